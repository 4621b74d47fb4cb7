// Package remote abstracts one API-management service endpoint.
//
// The Store interface is the capability the reconciler consumes: it reads and writes services,
// proxies, metrics, methods, application plans, limits and mapping rules. Two Stores exist per
// run, a source and a destination.
//
// # Client
//
// Client implements Store over the Account Management REST API. It is constructed from a URL
// whose user-info carries the access token:
//
//	cfg := remote.Config{URL: "https://TOKEN@acme-admin.example.com"}
//	client, err := remote.NewClient(cfg)
//	svc, err := client.ShowService(ctx, 42)
//
// Non-2xx responses are returned as *APIError. Nothing is retried.
//
// # Testing
//
// core/remote/memory provides an in-memory Store and core/remote/mocks a testify mock.
package remote

// Package entity defines the configuration records exchanged with an API-management
// service: services, proxies, metrics, methods, application plans, limits and mapping rules.
//
// Every record keeps the fields the reconciler inspects as typed struct fields and carries
// everything else in an opaque Extra bag. The bag is passed through untouched, so fields the
// remote service adds later survive a copy without this package knowing about them.
//
// # Decoding
//
// Remote payloads are loosely typed (ids may arrive as numbers or strings, flags as booleans,
// "true" or 1). Decoding coerces them with spf13/cast so comparisons on typed fields are exact.
//
// # Usage
//
//	var m entity.Metric
//	_ = json.Unmarshal(data, &m)
//	payload := m.Fields().Without(entity.FieldID, entity.FieldLinks)
package entity

// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to archive run reports. This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Archive
//
// Archive writes one JSON object per run under <prefix>/<yyyy-mm-dd>/<run_id>.json,
// creating the bucket on first use, and reads archived reports back by key.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Report)
//	archive := storage.NewArchive(client, cfg.Report)
//	key, err := archive.Put(ctx, report.RunID, report.StartedAt, report)
package storage

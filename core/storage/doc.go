// Package storage archives sync reports to S3-compatible object storage.
//
// It wraps the MinIO Go client behind a small Client interface so the archive
// logic can be unit tested with the mock in core/storage/mocks. This supports
// both AWS S3 and self-hosted MinIO instances.
//
// # Archiver
//
// Archiver marshals a value to JSON and uploads it under a configured prefix,
// creating the bucket on first use. The sync command uses it to keep one report
// per run, keyed by the run id.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	archiver := storage.NewArchiver(client, cfg.Storage)
//	key, err := archiver.Archive(ctx, runID, result)
package storage

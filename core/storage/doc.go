// Package storage wraps the MinIO client for S3-compatible object storage.
//
// The reconciler reads source exports from the configured bucket and
// publishes JSON and CSV reports back to it. Client is an interface so tests
// can use the testify mock in core/storage/mocks.
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage

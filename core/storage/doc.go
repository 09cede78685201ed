// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface covering what the
// snapshot exporter needs. This abstraction supports both AWS S3 and
// self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: EnsureBucket creates the snapshot bucket on demand.
//   - PutObject: Uploads a snapshot.
//   - ListObjects: Lists snapshots under a prefix.
//   - RemoveObjects: Prunes snapshots beyond the retention count.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage

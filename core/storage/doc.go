// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for common operations
// like checking bucket existence, uploading files, and listing objects. This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the asset bucket.
//   - MakeBucket: Creates the bucket on first start.
//   - PutObject: Uploads content (with size and options).
//   - GetObject: Retrieves content as a stream (previews, snapshots).
//   - StatObject: Fetches metadata for a single asset object.
//   - ListObjects: Lists objects under a handler prefix.
//   - RemoveObject / RemoveObjects: Deletes pruned assets.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "assets")
package storage

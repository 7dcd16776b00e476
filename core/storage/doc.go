// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface so the object
// backend of the bucket store (core/kv) can run against AWS S3, a self-hosted
// MinIO instance, or the testify mock in core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: bucket bootstrap (see EnsureBucket).
//   - PutObject / GetObject / RemoveObject: one object per stored key.
//   - ListObjects: prefix listing used for key enumeration.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage

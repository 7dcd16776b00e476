package kv

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"sort"
	"strings"

	"roster-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

const objectExtension = ".json"

// ObjectStore keeps one object per key under <prefix>/<scope>/ in a bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	dir    string
}

// NewObjectStore creates an ObjectStore.
func NewObjectStore(client storage.Client, bucket, prefix, scope string) *ObjectStore {
	return &ObjectStore{
		client: client,
		bucket: bucket,
		dir:    path.Join(prefix, scope) + "/",
	}
}

func (s *ObjectStore) objectName(key string) string {
	return s.dir + url.PathEscape(key) + objectExtension
}

func (s *ObjectStore) Get(ctx context.Context, key string) (string, bool, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	// minio reports a missing object on first read, not on GetObject.
	data, err := io.ReadAll(obj)
	if err != nil {
		if storage.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

func (s *ObjectStore) Set(ctx context.Context, key, value string) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.objectName(key), strings.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, s.objectName(key), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *ObjectStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	// PathEscape works per character, so escaping keeps prefixes intact.
	listPrefix := s.dir + url.PathEscape(prefix)
	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: listPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", listPrefix, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, s.dir)
		if !strings.HasSuffix(name, objectExtension) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, objectExtension))
		if err != nil || !strings.HasPrefix(key, prefix) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

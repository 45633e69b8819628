package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// ArchivedObject is one stored upload.
type ArchivedObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archive stores uploaded spreadsheets under <prefix>/<entity>/<ray id>/<file name>.
type Archive struct {
	client Client
	bucket string
	prefix string
}

// NewArchive creates an archive over client using the bucket and prefix from cfg.
func NewArchive(client Client, cfg Config) *Archive {
	prefix := strings.Trim(cfg.ArchivePrefix, "/")
	if prefix == "" {
		prefix = "imports"
	}
	return &Archive{client: client, bucket: cfg.Bucket, prefix: prefix}
}

// EnsureBucket creates the archive bucket when missing.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", a.bucket, err)
	}
	return nil
}

// Key returns the object key of an upload.
func (a *Archive) Key(entity, rayID, filename string) string {
	return path.Join(a.prefix, entity, rayID, path.Base(filename))
}

// Save uploads data and returns its object key.
func (a *Archive) Save(ctx context.Context, entity, rayID, filename string, data []byte, contentType string) (string, error) {
	key := a.Key(entity, rayID, filename)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", key, err)
	}
	return key, nil
}

// Open reads an object from the archive bucket. key may be any object in the bucket.
func (a *Archive) Open(ctx context.Context, key string) ([]byte, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// List returns the archived uploads of entity.
func (a *Archive) List(ctx context.Context, entity string) ([]ArchivedObject, error) {
	objects := []ArchivedObject{}
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    path.Join(a.prefix, entity) + "/",
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list archive: %w", obj.Err)
		}
		objects = append(objects, ArchivedObject{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	return objects, nil
}

package storage

import (
	"context"
	"io"
	"time"
)

type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	ETag     string `json:"etag"`
}

type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	// List returns the objects whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	GetPublicURL(key string) string
}

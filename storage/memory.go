package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryUploader keeps objects in memory.
type MemoryUploader struct {
	mu            sync.Mutex
	objects       map[string][]byte
	modified      map[string]time.Time
	publicBaseURL string
}

func NewMemoryUploader(publicBaseURL string) *MemoryUploader {
	return &MemoryUploader{
		objects:       make(map[string][]byte),
		modified:      make(map[string]time.Time),
		publicBaseURL: publicBaseURL,
	}
}

func (u *MemoryUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, fmt.Errorf("failed to read object body (key: %s): %w", key, err)
	}
	u.mu.Lock()
	u.objects[key] = buf.Bytes()
	u.modified[key] = time.Now()
	u.mu.Unlock()
	return &UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *MemoryUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	delete(u.modified, key)
	return nil
}

func (u *MemoryUploader) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	var objects []ObjectInfo
	for key, data := range u.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, ObjectInfo{Key: key, Size: int64(len(data)), LastModified: u.modified[key]})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// Object returns the stored body of key.
func (u *MemoryUploader) Object(key string) ([]byte, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	data, ok := u.objects[key]
	return data, ok
}

func (u *MemoryUploader) GetPublicURL(key string) string {
	return publicURL(u.publicBaseURL, key)
}

package filestorage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// StoredObject describes an object after it has been written
type StoredObject struct {
	Key         string
	Size        int64
	ContentType string
}

// Storage is a blob store for uploaded documents
type Storage interface {
	// Save writes r under dir with a generated name that keeps filename's extension
	Save(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (*StoredObject, error)

	// Delete removes the object; a missing object is not an error
	Delete(ctx context.Context, key string) error

	// URL returns a link the client can fetch the object from
	URL(ctx context.Context, key string) (string, error)
}

// objectKey builds "dir/<uuid><ext>" using forward slashes
func objectKey(dir, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := uuid.New().String() + ext
	dir = strings.Trim(path.Clean("/"+dir), "/")
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// validKey rejects empty keys and keys escaping the storage root
func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

package storage

import "context"

// Storage persists uploaded files (resumes, avatars) and returns a URL or
// path that can be stored on the owning record.
type Storage interface {
	Save(ctx context.Context, folder, filename, contentType string, data []byte) (string, error)
}

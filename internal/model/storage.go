package model

import (
	"context"
	"io"
)

// Storage archives exported artifacts in object storage.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64) error
}

// Package apblob reads and writes objects in blob storage.
package apblob

import (
	"context"
)

type PutInput struct {
	Key         string
	Data        []byte
	ContentType *string
}

// Client is the interface for blob storage operations.
type Client interface {
	// Put stores data under the given key.
	Put(ctx context.Context, input PutInput) error

	// Get retrieves data stored under the given key. Returns ErrBlobNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
}

package apblob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryClient(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	_, err := c.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrBlobNotFound)

	data := []byte("catalog")
	require.NoError(t, c.Put(ctx, PutInput{Key: "catalog.json", Data: data}))

	// Stored data does not alias the caller's buffer
	data[0] = 'C'

	got, err := c.Get(ctx, "catalog.json")
	require.NoError(t, err)
	require.Equal(t, "catalog", string(got))

	got[0] = 'X'
	again, err := c.Get(ctx, "catalog.json")
	require.NoError(t, err)
	require.Equal(t, "catalog", string(again))
}

package config

import (
	"github.com/invopop/jsonschema"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

type BlobStorageProvider string

const (
	BlobStorageProviderS3     BlobStorageProvider = "s3"
	BlobStorageProviderMemory BlobStorageProvider = "memory"
)

// BlobStorageImpl is the interface implemented by concrete blob storage configurations.
type BlobStorageImpl interface {
	GetProvider() BlobStorageProvider
	Validate(vc *common.ValidationContext) error
}

// BlobStorage is the holder for a BlobStorageImpl instance.
type BlobStorage struct {
	InnerVal BlobStorageImpl `json:"-" yaml:"-"`
}

func (BlobStorage) JSONSchema() *jsonschema.Schema {
	return discriminatedObjectSchema("provider", string(BlobStorageProviderS3), string(BlobStorageProviderMemory))
}

func (b *BlobStorage) GetProvider() BlobStorageProvider {
	if b == nil || b.InnerVal == nil {
		return ""
	}
	return b.InnerVal.GetProvider()
}

func (b *BlobStorage) Validate(vc *common.ValidationContext) error {
	if b == nil || b.InnerVal == nil {
		return vc.NewError("blob storage must be specified")
	}
	return b.InnerVal.Validate(vc)
}

var _ BlobStorageImpl = (*BlobStorage)(nil)

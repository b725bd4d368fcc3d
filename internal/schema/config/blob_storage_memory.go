package config

import "github.com/rmorlok/connlifecycle/internal/schema/common"

// BlobStorageMemory keeps blobs in process memory. Only useful for tests and local development.
type BlobStorageMemory struct {
	Provider BlobStorageProvider `json:"provider" yaml:"provider"`
}

func (b *BlobStorageMemory) GetProvider() BlobStorageProvider {
	return BlobStorageProviderMemory
}

func (b *BlobStorageMemory) Validate(_ *common.ValidationContext) error {
	return nil
}

package config

import (
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

const defaultRegistryBlobKey = "catalog.json"

// RegistryBlob reads the catalog snapshot from blob storage so that it can be republished without redeploying.
type RegistryBlob struct {
	Provider RegistryProvider `json:"provider" yaml:"provider"`
	Storage  *BlobStorage     `json:"storage" yaml:"storage"`
	Key      string           `json:"key,omitempty" yaml:"key,omitempty"`
}

func (r *RegistryBlob) GetProvider() RegistryProvider {
	return RegistryProviderBlob
}

func (r *RegistryBlob) GetKeyOrDefault() string {
	if r.Key == "" {
		return defaultRegistryBlobKey
	}
	return r.Key
}

func (r *RegistryBlob) Validate(vc *common.ValidationContext) error {
	return r.Storage.Validate(vc.PushField("storage"))
}

package config

import (
	"github.com/invopop/jsonschema"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

type RegistryProvider string

const (
	// RegistryProviderRemote reads connector metadata from an HTTP catalog service.
	RegistryProviderRemote RegistryProvider = "remote"

	// RegistryProviderSnapshot reads connector metadata from a catalog file bundled with the deployment.
	RegistryProviderSnapshot RegistryProvider = "snapshot"

	// RegistryProviderBlob reads the catalog file from blob storage.
	RegistryProviderBlob RegistryProvider = "blob"
)

// RegistryImpl is the interface implemented by concrete registry configurations.
type RegistryImpl interface {
	GetProvider() RegistryProvider
	Validate(vc *common.ValidationContext) error
}

// Registry is the holder for a RegistryImpl instance.
type Registry struct {
	InnerVal RegistryImpl `json:"-" yaml:"-"`
}

func (Registry) JSONSchema() *jsonschema.Schema {
	return discriminatedObjectSchema("provider", string(RegistryProviderRemote), string(RegistryProviderSnapshot), string(RegistryProviderBlob))
}

func (r *Registry) GetProvider() RegistryProvider {
	if r == nil || r.InnerVal == nil {
		return ""
	}
	return r.InnerVal.GetProvider()
}

func (r *Registry) Validate(vc *common.ValidationContext) error {
	if r == nil || r.InnerVal == nil {
		return vc.NewError("registry must be specified")
	}
	return r.InnerVal.Validate(vc)
}

var _ RegistryImpl = (*Registry)(nil)

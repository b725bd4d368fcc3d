package config

import (
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

type RegistrySnapshot struct {
	Provider RegistryProvider `json:"provider" yaml:"provider"`
	Path     string           `json:"path" yaml:"path"`
}

func (r *RegistrySnapshot) GetProvider() RegistryProvider {
	return RegistryProviderSnapshot
}

func (r *RegistrySnapshot) Validate(vc *common.ValidationContext) error {
	if r.Path == "" {
		return vc.NewErrorForField("path", "path must be specified")
	}
	return nil
}

package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func (r *Registry) MarshalYAML() (interface{}, error) {
	if r.InnerVal == nil {
		return nil, nil
	}
	return r.InnerVal, nil
}

// UnmarshalYAML handles unmarshalling from YAML while allowing us to make decisions
// about how the data is unmarshalled based on the concrete type being represented
func (r *Registry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("registry expected a mapping node, got %s", KindToString(value.Kind))
	}

	var registry RegistryImpl

fieldLoop:
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		switch keyNode.Value {
		case "provider":
			switch RegistryProvider(valueNode.Value) {
			case RegistryProviderRemote:
				registry = &RegistryRemote{Provider: RegistryProviderRemote}
				break fieldLoop
			case RegistryProviderSnapshot:
				registry = &RegistrySnapshot{Provider: RegistryProviderSnapshot}
				break fieldLoop
			case RegistryProviderBlob:
				registry = &RegistryBlob{Provider: RegistryProviderBlob}
				break fieldLoop
			default:
				return fmt.Errorf("unknown registry provider %v", valueNode.Value)
			}
		}
	}

	if registry == nil {
		return fmt.Errorf("invalid structure for registry; missing provider field")
	}

	if err := value.Decode(registry); err != nil {
		return err
	}

	r.InnerVal = registry
	return nil
}

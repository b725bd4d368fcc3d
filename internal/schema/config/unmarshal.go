package config

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func UnmarshallYamlRoot(data []byte) (*Root, error) {
	var root Root
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config yaml")
	}

	return &root, nil
}

func UnmarshallYamlRootString(data string) (*Root, error) {
	return UnmarshallYamlRoot([]byte(data))
}

package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/schema"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
	"github.com/rmorlok/connlifecycle/internal/util"
)

func LoadConfig(path string) (C, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return LoadConfigBytes(content)
}

// LoadConfigBytes validates the YAML against the config schema, unmarshals it and then applies the
// semantic validation the schema cannot express.
func LoadConfigBytes(content []byte) (C, error) {
	s, err := schema.CompileSchema(schema.SchemaIdConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config schema")
	}

	configJsonBytes, err := util.YamlBytesToJSON(content)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert YAML to JSON for config schema validation")
	}

	var configAsParsedJson interface{}
	if err := json.Unmarshal(configJsonBytes, &configAsParsedJson); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config JSON for config schema validation")
	}

	if err := s.Validate(configAsParsedJson); err != nil {
		return nil, errors.Wrap(err, "config schema validation failed")
	}

	root, err := sconfig.UnmarshallYamlRoot(content)
	if err != nil {
		return nil, err
	}

	if err := root.Validate(); err != nil {
		return nil, errors.Wrap(err, "config is invalid")
	}

	return &config{root: root}, nil
}

func FromRoot(root *sconfig.Root) C {
	return &config{root: root}
}

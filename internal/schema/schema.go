// Package schema produces and compiles the JSON schemas used to validate input documents before they are
// unmarshalled into typed structures.
package schema

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
	jsonschemav5 "github.com/santhosh-tekuri/jsonschema/v5"
)

const SchemaIdConfig = "https://schemas.connlifecycle.dev/config.json"

var allSchemas = []string{
	SchemaIdConfig,
}

var schemaOnce sync.Once
var schemaCompiler *jsonschemav5.Compiler
var schemaErr error
var schemaCache = make(map[string]*jsonschemav5.Schema)
var compileMutex sync.RWMutex

// ReflectConfig builds the JSON schema for the configuration file from the Go types that hold it.
func ReflectConfig() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: false,
		// Only treat fields as required when explicitly tagged with `jsonschema:"required"`.
		RequiredFromJSONSchemaTags: true,
	}

	s := r.Reflect(&sconfig.Root{})
	s.ID = jsonschema.ID(SchemaIdConfig)
	return s
}

// ConfigSchemaBytes returns the pretty-printed configuration schema.
func ConfigSchemaBytes() ([]byte, error) {
	return json.MarshalIndent(ReflectConfig(), "", "  ")
}

func loadSchemasOnce() error {
	schemaOnce.Do(func() {
		schemaCompiler = jsonschemav5.NewCompiler()

		configBytes, err := ConfigSchemaBytes()
		if err != nil {
			schemaErr = errors.Wrap(err, "failed to marshal config schema")
			return
		}

		if err := schemaCompiler.AddResource(SchemaIdConfig, bytes.NewReader(configBytes)); err != nil {
			schemaErr = errors.Wrap(err, "failed to load config schema")
		}
	})

	return schemaErr
}

// CompileSchema compiles a known schema with jsonschema/v5. Compiled schemas are cached.
func CompileSchema(schemaId string) (*jsonschemav5.Schema, error) {
	if err := loadSchemasOnce(); err != nil {
		return nil, err
	}

	compileMutex.RLock()
	s, ok := schemaCache[schemaId]
	compileMutex.RUnlock()

	if ok {
		return s, nil
	}

	compiled, err := schemaCompiler.Compile(schemaId)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compile schema '%s'", schemaId)
	}

	compileMutex.Lock()
	defer compileMutex.Unlock()
	schemaCache[schemaId] = compiled

	return schemaCache[schemaId], nil
}

// Package configschema writes the reflected JSON schema for the configuration file so it can be
// referenced by editors and tooling.
package configschema

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/schema"
)

// Generate writes the reflected JSON Schema for the config root to the provided path
// and also returns the pretty-printed JSON bytes for further use.
func Generate(outPath string) ([]byte, error) {
	data, err := schema.ConfigSchemaBytes()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build config schema")
	}

	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return nil, err
	}

	return data, nil
}

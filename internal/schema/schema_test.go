package schema

import (
	"encoding/json"
	"testing"

	"github.com/rmorlok/connlifecycle/internal/util"
	"github.com/stretchr/testify/require"
)

func Test_AllSchemasCompile(t *testing.T) {
	for _, schemaId := range allSchemas {
		_, err := CompileSchema(schemaId)
		require.NoError(t, err, "schema %s should compile", schemaId)
	}
}

func TestConfigSchema(t *testing.T) {
	s, err := CompileSchema(SchemaIdConfig)
	require.NoError(t, err)

	validate := func(t *testing.T, data string) error {
		j, err := util.YamlBytesToJSON([]byte(data))
		require.NoError(t, err)

		var v interface{}
		require.NoError(t, json.Unmarshal(j, &v))
		return s.Validate(v)
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validate(t, `
database:
  provider: sqlite
  path: /tmp/lifecycle.db
registry:
  provider: snapshot
  path: ./catalog.json
lifecycle:
  deployment_mode: cloud
  reconcile_catalog_cron: "*/5 * * * *"
  reconcile_lock_duration: 5m
`))
	})

	t.Run("unknown database provider", func(t *testing.T) {
		require.Error(t, validate(t, `
database:
  provider: oracle
registry:
  provider: snapshot
  path: ./catalog.json
`))
	})

	t.Run("bad duration", func(t *testing.T) {
		require.Error(t, validate(t, `
database:
  provider: sqlite
  path: /tmp/lifecycle.db
registry:
  provider: snapshot
  path: ./catalog.json
lifecycle:
  reconcile_lock_duration: forever
`))
	})

	t.Run("wrong type", func(t *testing.T) {
		require.Error(t, validate(t, `
database:
  provider: sqlite
  path: /tmp/lifecycle.db
registry:
  provider: snapshot
  path: ./catalog.json
worker:
  concurrency: lots
`))
	})
}

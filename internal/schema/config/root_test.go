package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRoot(t *testing.T) {
	assert := require.New(t)

	t.Run("full", func(t *testing.T) {
		root, err := UnmarshallYamlRootString(`
database:
  provider: sqlite
  path: ./lifecycle.db
logging:
  type: json
redis:
  provider: miniredis
registry:
  provider: remote
  base_url: https://registry.example.com
  timeout: 5s
lifecycle:
  deployment_mode: cloud
  pause_syncs_with_unsupported_versions: true
  update_support_states_cron: "@daily"
  flags:
    redis_overrides: true
worker:
  concurrency: 2
`)
		assert.NoError(err)
		assert.NoError(root.Validate())

		assert.Equal(DatabaseProviderSqlite, root.Database.GetProvider())
		assert.Equal(RedisProviderMiniredis, root.Redis.GetProvider())
		assert.Equal(RegistryProviderRemote, root.Registry.GetProvider())
		assert.Equal(5*time.Second, root.Registry.InnerVal.(*RegistryRemote).GetTimeoutOrDefault())
		assert.True(root.Lifecycle.IsCloud())
		assert.True(root.Lifecycle.PauseSyncsWithUnsupportedVersions)
		assert.Equal("@daily", root.Lifecycle.GetUpdateSupportStatesCronOrDefault())
		assert.Equal(defaultReconcileCatalogCron, root.Lifecycle.GetReconcileCatalogCronOrDefault())
		assert.Equal(2, root.Worker.GetConcurrency())
		assert.Equal(uint64(8081), root.Worker.GetHealthCheckPort())
	})

	t.Run("missing required blocks", func(t *testing.T) {
		root := &Root{}
		err := root.Validate()
		assert.ErrorContains(err, "database block is required")
		assert.ErrorContains(err, "registry block is required")
	})

	t.Run("redis overrides without redis", func(t *testing.T) {
		root := &Root{
			Database:  &Database{InnerVal: &DatabaseSqlite{Path: "foo.db"}},
			Registry:  &Registry{InnerVal: &RegistrySnapshot{Path: "catalog.json"}},
			Lifecycle: &Lifecycle{Flags: &Flags{RedisOverrides: true}},
		}
		assert.ErrorContains(root.Validate(), "$.lifecycle.flags.redis_overrides")
	})

	t.Run("nil logging", func(t *testing.T) {
		var root *Root
		assert.NotNil(root.GetRootLogger())
	})
}

func TestLifecycle(t *testing.T) {
	assert := require.New(t)

	t.Run("defaults", func(t *testing.T) {
		var l *Lifecycle
		assert.Equal(DeploymentModeSelfHosted, l.GetDeploymentModeOrDefault())
		assert.False(l.IsCloud())
		assert.Equal(10*time.Minute, l.GetReconcileLockDurationOrDefault())
		assert.Equal("0.2.0", l.GetDefaultProtocolVersionOrDefault())
		assert.Nil(l.GetFlags())
		assert.NoError(l.Validate(nil))
	})

	t.Run("validate", func(t *testing.T) {
		root := &Root{
			Database: &Database{InnerVal: &DatabaseSqlite{Path: "foo.db"}},
			Registry: &Registry{InnerVal: &RegistrySnapshot{Path: "catalog.json"}},
			Lifecycle: &Lifecycle{
				DeploymentMode:          "on_prem",
				ReconcileCatalogCron:    "every tuesday",
				UpdateSupportStatesCron: "0 0 * * *",
			},
		}
		err := root.Validate()
		assert.ErrorContains(err, "$.lifecycle.deployment_mode")
		assert.ErrorContains(err, "$.lifecycle.reconcile_catalog_cron")
		assert.NotContains(err.Error(), "update_support_states_cron")
	})
}

func TestRegistry(t *testing.T) {
	assert := require.New(t)

	var r Registry
	assert.NoError(yaml.Unmarshal([]byte("provider: snapshot\npath: ./catalog.json"), &r))
	assert.Equal(&RegistrySnapshot{Provider: RegistryProviderSnapshot, Path: "./catalog.json"}, r.InnerVal)

	assert.Error(yaml.Unmarshal([]byte("provider: ftp"), &r))

	remote := &RegistryRemote{BaseUrl: "not a url"}
	assert.Error(remote.Validate(nil))
	assert.Equal(30*time.Second, remote.GetTimeoutOrDefault())
	assert.Equal("connlifecycle", remote.GetUserAgentOrDefault())
}

func TestRedis(t *testing.T) {
	assert := require.New(t)

	t.Run("yaml parse", func(t *testing.T) {
		var r Redis
		assert.NoError(yaml.Unmarshal([]byte("provider: redis\naddress: localhost:6379\nprotocol: 2"), &r))
		assert.Equal(&RedisReal{Provider: RedisProviderRedis, Address: "localhost:6379", Protocol: 2}, r.InnerVal)

		var defaulted Redis
		assert.NoError(yaml.Unmarshal([]byte("address: localhost:6379"), &defaulted))
		assert.Equal(RedisProviderRedis, defaulted.GetProvider())

		var mini Redis
		assert.NoError(yaml.Unmarshal([]byte("provider: miniredis"), &mini))
		assert.Equal(RedisProviderMiniredis, mini.GetProvider())
	})

	t.Run("validate", func(t *testing.T) {
		assert.Error((&RedisReal{}).Validate(nil))
		assert.Error((&RedisReal{Address: "localhost:6379", Protocol: 4}).Validate(nil))
		assert.NoError((&RedisReal{Address: "localhost:6379"}).Validate(nil))
	})

	t.Run("redis options", func(t *testing.T) {
		opts := (&RedisReal{Address: "redis:6379", Protocol: 2, DB: 3}).ToRedisOptions()
		assert.Equal("tcp", opts.Network)
		assert.Equal("redis:6379", opts.Addr)
		assert.Equal(2, opts.Protocol)
		assert.Equal(3, opts.DB)
	})
}

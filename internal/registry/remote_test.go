package registry

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/rmorlok/connlifecycle/internal/aplog/mock"
	"github.com/rmorlok/connlifecycle/internal/database"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
	"github.com/rmorlok/connlifecycle/internal/test_utils"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"
)

const testBaseUrl = "https://registry.example.com"

func newTestRemoteClient(t *testing.T, cfg *sconfig.RegistryRemote) (*remoteClient, *mock.TestingHandler) {
	t.Helper()

	if cfg == nil {
		cfg = &sconfig.RegistryRemote{Provider: sconfig.RegistryProviderRemote, BaseUrl: testBaseUrl + "/"}
	}

	logger, handler := mock.NewTestLogger(t)
	c := newRemoteClient(cfg, logger)
	gock.InterceptClient(c.rc.GetClient())
	t.Cleanup(func() {
		gock.Off()
		gock.RestoreClient(c.rc.GetClient())
	})

	return c, handler
}

func TestRemoteGetLatestCatalog(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c, _ := newTestRemoteClient(t, nil)

		gock.New(testBaseUrl).
			Get("/registry.json").
			MatchHeader("User-Agent", "connlifecycle").
			Reply(http.StatusOK).
			JSON(map[string]interface{}{
				"sources": []map[string]interface{}{
					{"name": "Foo", "docker_repository": "acme/source-foo", "docker_image_tag": "1.0.0"},
				},
				"destinations": []map[string]interface{}{},
			})

		catalog, err := c.GetLatestCatalog(context.Background())
		require.NoError(t, err)
		require.Len(t, catalog.Sources, 1)
		require.Equal(t, "acme/source-foo", catalog.Entries()[0].DockerRepository)
		require.True(t, gock.IsDone())
	})

	t.Run("server error", func(t *testing.T) {
		c, _ := newTestRemoteClient(t, nil)

		test_utils.MockJSONResponse(http.MethodGet, testBaseUrl, "/registry.json", http.StatusServiceUnavailable, map[string]string{"error": "down"})

		_, err := c.GetLatestCatalog(context.Background())
		require.ErrorContains(t, err, "503")
	})

	t.Run("retries server errors", func(t *testing.T) {
		c, _ := newTestRemoteClient(t, &sconfig.RegistryRemote{
			Provider:   sconfig.RegistryProviderRemote,
			BaseUrl:    testBaseUrl,
			RetryCount: 1,
		})

		test_utils.MockJSONResponse(http.MethodGet, testBaseUrl, "/registry.json", http.StatusBadGateway, map[string]string{})
		test_utils.MockJSONResponse(http.MethodGet, testBaseUrl, "/registry.json", http.StatusOK, map[string]interface{}{"sources": []interface{}{}})

		catalog, err := c.GetLatestCatalog(context.Background())
		require.NoError(t, err)
		require.Empty(t, catalog.Entries())
		require.True(t, gock.IsDone())
	})
}

func TestRemoteGetDefinitionByVersion(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		c, _ := newTestRemoteClient(t, nil)

		test_utils.MockJSONResponse(http.MethodGet, testBaseUrl, "/metadata/acme/source-foo/1.2.0/source.json", http.StatusOK, map[string]interface{}{
			"name":              "Foo",
			"docker_repository": "acme/source-foo",
			"docker_image_tag":  "1.2.0",
			"protocol_version":  "0.5.0",
			"spec":              map[string]interface{}{"connectionSpecification": map[string]interface{}{"type": "object"}},
		})

		entry, err := c.GetDefinitionByVersion(context.Background(), "acme/source-foo", "1.2.0", database.ActorTypeSource)
		require.NoError(t, err)
		require.NotNil(t, entry)
		require.Equal(t, database.ActorTypeSource, entry.ActorType)
		require.Equal(t, "0.5.0", entry.ProtocolVersion)
		require.NoError(t, entry.ValidateSpec())
	})

	t.Run("not found", func(t *testing.T) {
		c, handler := newTestRemoteClient(t, nil)

		test_utils.MockJSONResponse(http.MethodGet, testBaseUrl, "/metadata/acme/source-foo/9.9.9/source.json", http.StatusNotFound, map[string]string{})

		entry, err := c.GetDefinitionByVersion(context.Background(), "acme/source-foo", "9.9.9", database.ActorTypeSource)
		require.NoError(t, err)
		require.Nil(t, entry)
		require.Equal(t, []string{"registry has no entry for version"}, handler.Messages(slog.LevelInfo))
	})

	t.Run("wrong actor type", func(t *testing.T) {
		c, handler := newTestRemoteClient(t, nil)

		test_utils.MockJSONResponse(http.MethodGet, testBaseUrl, "/metadata/acme/source-foo/1.2.0/destination.json", http.StatusOK, map[string]interface{}{
			"actor_type":        "source",
			"docker_repository": "acme/source-foo",
			"docker_image_tag":  "1.2.0",
		})

		entry, err := c.GetDefinitionByVersion(context.Background(), "acme/source-foo", "1.2.0", database.ActorTypeDestination)
		require.NoError(t, err)
		require.Nil(t, entry)
		require.Len(t, handler.Messages(slog.LevelWarn), 1)
	})

	t.Run("server error", func(t *testing.T) {
		c, _ := newTestRemoteClient(t, nil)

		test_utils.MockJSONResponse(http.MethodGet, testBaseUrl, "/metadata/acme/source-foo/1.2.0/source.json", http.StatusInternalServerError, map[string]string{})

		_, err := c.GetDefinitionByVersion(context.Background(), "acme/source-foo", "1.2.0", database.ActorTypeSource)
		require.Error(t, err)
	})
}

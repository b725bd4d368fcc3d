package registry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/database"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
)

type remoteClient struct {
	cfg    *sconfig.RegistryRemote
	rc     *resty.Client
	logger *slog.Logger
}

// NewRemoteClient reads the catalog from {base_url}/registry.json and individual versions from
// {base_url}/metadata/{repository}/{tag}/{actor type}.json.
func NewRemoteClient(cfg *sconfig.RegistryRemote, logger *slog.Logger) Client {
	return newRemoteClient(cfg, logger)
}

func newRemoteClient(cfg *sconfig.RegistryRemote, logger *slog.Logger) *remoteClient {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseUrl, "/")).
		SetTimeout(cfg.GetTimeoutOrDefault()).
		SetHeader("User-Agent", cfg.GetUserAgentOrDefault()).
		SetHeader("Accept", "application/json").
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(250 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &remoteClient{
		cfg:    cfg,
		rc:     rc,
		logger: logger,
	}
}

func (c *remoteClient) GetLatestCatalog(ctx context.Context) (*Catalog, error) {
	var catalog Catalog
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&catalog).
		Get("/registry.json")
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch catalog")
	}

	if resp.IsError() {
		return nil, errors.Errorf("failed to fetch catalog: status %d", resp.StatusCode())
	}

	return &catalog, nil
}

func (c *remoteClient) GetDefinitionByVersion(ctx context.Context, dockerRepository, dockerImageTag string, actorType database.ActorType) (*Entry, error) {
	path := fmt.Sprintf(
		"/metadata/%s/%s/%s.json",
		dockerRepository,
		url.PathEscape(dockerImageTag),
		actorType,
	)

	var entry Entry
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&entry).
		Get(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s:%s from registry", dockerRepository, dockerImageTag)
	}

	if resp.StatusCode() == http.StatusNotFound {
		c.logger.Info("registry has no entry for version",
			"docker_repository", dockerRepository,
			"docker_image_tag", dockerImageTag,
			"actor_type", actorType,
		)
		return nil, nil
	}

	if resp.IsError() {
		return nil, errors.Errorf("failed to fetch %s:%s from registry: status %d", dockerRepository, dockerImageTag, resp.StatusCode())
	}

	if entry.ActorType == "" {
		entry.ActorType = actorType
	}

	if entry.ActorType != actorType || entry.DockerRepository != dockerRepository || entry.DockerImageTag != dockerImageTag {
		c.logger.Warn("registry returned a mismatched entry",
			"docker_repository", dockerRepository,
			"docker_image_tag", dockerImageTag,
			"actor_type", actorType,
			"entry_docker_repository", entry.DockerRepository,
			"entry_docker_image_tag", entry.DockerImageTag,
			"entry_actor_type", entry.ActorType,
		)
		return nil, nil
	}

	return &entry, nil
}

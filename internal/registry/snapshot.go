package registry

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/database"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
	"github.com/rmorlok/connlifecycle/internal/util"
)

type snapshotClient struct {
	path   string
	logger *slog.Logger
}

// NewSnapshotClient serves the catalog from a YAML or JSON file. The file is re-read on every call so that a
// redeployed snapshot is picked up without a restart.
func NewSnapshotClient(cfg *sconfig.RegistrySnapshot, logger *slog.Logger) Client {
	path, err := homedir.Expand(cfg.Path)
	if err != nil {
		logger.Warn("could not expand catalog snapshot path", "path", cfg.Path, "error", err)
		path = cfg.Path
	}

	return &snapshotClient{
		path:   path,
		logger: logger,
	}
}

func (c *snapshotClient) load() (*Catalog, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog snapshot '%s'", c.path)
	}

	return ParseCatalog(data)
}

// ParseCatalog parses a catalog document in YAML or JSON.
func ParseCatalog(data []byte) (*Catalog, error) {
	j, err := util.YamlBytesToJSON(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog")
	}

	var catalog Catalog
	if err := json.Unmarshal(j, &catalog); err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog")
	}

	return &catalog, nil
}

func (c *snapshotClient) GetLatestCatalog(ctx context.Context) (*Catalog, error) {
	return c.load()
}

// GetDefinitionByVersion only knows the versions present in the snapshot.
func (c *snapshotClient) GetDefinitionByVersion(ctx context.Context, dockerRepository, dockerImageTag string, actorType database.ActorType) (*Entry, error) {
	catalog, err := c.load()
	if err != nil {
		return nil, err
	}

	if entry := catalog.Find(dockerRepository, dockerImageTag, actorType); entry != nil {
		return entry, nil
	}

	c.logger.Info("catalog snapshot has no entry for version",
		"docker_repository", dockerRepository,
		"docker_image_tag", dockerImageTag,
		"actor_type", actorType,
	)
	return nil, nil
}

package registry

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/apblob"
	"github.com/rmorlok/connlifecycle/internal/database"
)

// Publisher accepts new catalogs. Only registries backed by storage this process can write implement it.
type Publisher interface {
	PublishCatalog(ctx context.Context, catalog *Catalog) error
}

type blobClient struct {
	blobs  apblob.Client
	key    string
	logger *slog.Logger
}

// NewBlobClient serves the catalog stored under key. The blob is read on every call so that a republished
// catalog is picked up without a restart.
func NewBlobClient(blobs apblob.Client, key string, logger *slog.Logger) Client {
	return &blobClient{
		blobs:  blobs,
		key:    key,
		logger: logger,
	}
}

func (c *blobClient) load(ctx context.Context) (*Catalog, error) {
	data, err := c.blobs.Get(ctx, c.key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog blob '%s'", c.key)
	}

	return ParseCatalog(data)
}

func (c *blobClient) GetLatestCatalog(ctx context.Context) (*Catalog, error) {
	return c.load(ctx)
}

func (c *blobClient) GetDefinitionByVersion(ctx context.Context, dockerRepository, dockerImageTag string, actorType database.ActorType) (*Entry, error) {
	catalog, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	if entry := catalog.Find(dockerRepository, dockerImageTag, actorType); entry != nil {
		return entry, nil
	}

	c.logger.Info("catalog blob has no entry for version",
		"docker_repository", dockerRepository,
		"docker_image_tag", dockerImageTag,
		"actor_type", actorType,
	)
	return nil, nil
}

// PublishCatalog replaces the stored catalog.
func (c *blobClient) PublishCatalog(ctx context.Context, catalog *Catalog) error {
	if catalog == nil {
		return errors.New("catalog is required")
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		return errors.Wrap(err, "failed to marshal catalog")
	}

	contentType := "application/json"
	if err := c.blobs.Put(ctx, apblob.PutInput{Key: c.key, Data: data, ContentType: &contentType}); err != nil {
		return errors.Wrapf(err, "failed to write catalog blob '%s'", c.key)
	}

	c.logger.Info("published catalog", "key", c.key, "entries", len(catalog.Entries()))
	return nil
}

var _ Client = (*blobClient)(nil)
var _ Publisher = (*blobClient)(nil)

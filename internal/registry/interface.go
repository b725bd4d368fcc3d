package registry

import (
	"context"

	"github.com/rmorlok/connlifecycle/internal/database"
)

// Client looks up published connector metadata. Lookups of entries that do not exist return nil, nil.
//
//go:generate mockgen -source=./interface.go -destination=./mock/registry.go -package=mock
type Client interface {
	GetLatestCatalog(ctx context.Context) (*Catalog, error)
	GetDefinitionByVersion(ctx context.Context, dockerRepository, dockerImageTag string, actorType database.ActorType) (*Entry, error)
}

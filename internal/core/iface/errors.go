package iface

import (
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/database"
)

var ErrNotFound = database.ErrNotFound
var ErrDefinitionNotFound = errors.Wrap(ErrNotFound, "actor definition not found")

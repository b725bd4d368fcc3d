package core

import (
	"github.com/rmorlok/connlifecycle/internal/core/iface"
)

var ErrNotFound = iface.ErrNotFound
var ErrDefinitionNotFound = iface.ErrDefinitionNotFound

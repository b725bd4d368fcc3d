package config

import (
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

// Re-export types from the common sub-package
type (
	HumanDuration = common.HumanDuration
)

// Re-export functions from the common sub-package
var (
	KindToString     = common.KindToString
	HumanDurationFor = common.HumanDurationFor
)

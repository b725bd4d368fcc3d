package iface

import (
	"github.com/google/uuid"
)

// ReconcileResult counts what a catalog reconciliation wrote. Entries that were rewritten without a version
// change are not counted.
type ReconcileResult struct {
	NewCount     int `json:"new_count"`
	UpdatedCount int `json:"updated_count"`
	SkippedCount int `json:"skipped_count"`
}

// SupportStateRunResult reports one support-state run.
type SupportStateRunResult struct {
	UnsupportedCount      int         `json:"unsupported_count"`
	DeprecatedCount       int         `json:"deprecated_count"`
	SupportedCount        int         `json:"supported_count"`
	DisabledConnectionIds []uuid.UUID `json:"disabled_connection_ids,omitempty"`

	// Failures collects per-definition and per-workspace errors. They are logged and do not fail the run.
	Failures error `json:"-"`
}

// Changed is the number of versions whose support state was written.
func (r *SupportStateRunResult) Changed() int {
	if r == nil {
		return 0
	}
	return r.UnsupportedCount + r.DeprecatedCount + r.SupportedCount
}

package legisync

import (
	"fmt"
	"strings"

	"github.com/capitolworks/legisync/pkg/reconcile"
)

// Result represents the complete result of an ingestion run.
type Result struct {
	// Taxonomy summarizes the term reconciliation pass.
	Taxonomy *reconcile.TaxonomyResult

	// Bill document counts
	FilesSeen       int // Total bill documents matched by the run
	FilesSkipped    int // Documents passed over by the change gate
	FilesReconciled int // Documents run through the full pipeline
	FilesFailed     int // Documents dropped by per-document errors

	// Bill record counts, split by whether reconciliation inserted a
	// new record or refreshed an existing one
	BillsCreated int
	BillsUpdated int

	// Operation metadata
	Forced bool // Whether the change gate was bypassed
}

// HasFailures returns true if any document was dropped.
func (r *Result) HasFailures() bool {
	return r.FilesFailed > 0
}

// Summary returns a human-readable summary of the ingestion result.
func (r *Result) Summary() string {
	var parts []string
	if r.Taxonomy != nil {
		parts = append(parts, fmt.Sprintf("terms: %d created, %d reused, %d pruned",
			r.Taxonomy.Created, r.Taxonomy.Reused, r.Taxonomy.Pruned))
	}
	parts = append(parts, fmt.Sprintf("bills: %d reconciled (%d new), %d skipped, %d failed of %d files",
		r.FilesReconciled, r.BillsCreated, r.FilesSkipped, r.FilesFailed, r.FilesSeen))
	if r.Forced {
		parts = append(parts, "(forced)")
	}
	return strings.Join(parts, "; ")
}

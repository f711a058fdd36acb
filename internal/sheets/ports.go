package sheets

import (
	"context"

	"bilancio/internal/analysis"
)

// Ports for outbound adapters.
type (
	// ReportExporter appends an analysis report snapshot to an external
	// sheet and returns a reference to the written row.
	ReportExporter interface {
		AppendReport(ctx context.Context, r analysis.Report) (rowRef string, err error)
	}
)

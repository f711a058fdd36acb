package memory

import (
	"context"
	"fmt"
	"sync"

	"bilancio/internal/analysis"
	ports "bilancio/internal/sheets"
)

// Exporter keeps appended reports in memory. Used in tests and when no
// spreadsheet is configured.
type Exporter struct {
	mu      sync.Mutex
	reports []analysis.Report
}

var _ ports.ReportExporter = (*Exporter)(nil)

func New() *Exporter {
	return &Exporter{}
}

func (e *Exporter) AppendReport(_ context.Context, r analysis.Report) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reports = append(e.reports, r)
	return fmt.Sprintf("memory:%d", len(e.reports)), nil
}

// Reports returns a copy of everything appended so far
func (e *Exporter) Reports() []analysis.Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]analysis.Report, len(e.reports))
	copy(out, e.reports)
	return out
}

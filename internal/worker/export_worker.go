package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"bilancio/internal/amqp"
	"bilancio/internal/analysis"
	"bilancio/internal/sheets"
)

// ReportBuilder produces the current analysis report
type ReportBuilder interface {
	BuildReport(ctx context.Context) (analysis.Report, error)
}

// ExportWorker exports report snapshots to an external sheet. Change events
// trigger an export, rate-limited by a minimum interval; a periodic ticker
// catches anything the debounce skipped.
type ExportWorker struct {
	reports     ReportBuilder
	exporter    sheets.ReportExporter
	minInterval time.Duration

	mu         sync.Mutex
	lastExport time.Time
	pending    bool

	now func() time.Time
}

func NewExportWorker(reports ReportBuilder, exporter sheets.ReportExporter, minInterval time.Duration) *ExportWorker {
	return &ExportWorker{
		reports:     reports,
		exporter:    exporter,
		minInterval: minInterval,
		now:         time.Now,
	}
}

// HandleChangeEvent reacts to a change notification. Exports immediately
// unless one ran within the minimum interval; in that case the change is
// remembered and flushed by the next periodic run.
func (w *ExportWorker) HandleChangeEvent(ctx context.Context, msg *amqp.ChangeEventMessage) error {
	w.mu.Lock()
	sinceLast := w.now().Sub(w.lastExport)
	if sinceLast < w.minInterval {
		w.pending = true
		w.mu.Unlock()

		slog.InfoContext(ctx, "Change event deferred, export ran recently",
			"kind", msg.Kind,
			"id", msg.ID,
			"since_last", sinceLast.Round(time.Second))
		return nil
	}
	w.mu.Unlock()

	slog.InfoContext(ctx, "Change event triggering export",
		"kind", msg.Kind,
		"id", msg.ID)

	return w.Export(ctx)
}

// Export builds the current report and appends a snapshot row
func (w *ExportWorker) Export(ctx context.Context) error {
	report, err := w.reports.BuildReport(ctx)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	ref, err := w.exporter.AppendReport(ctx, report)
	if err != nil {
		return fmt.Errorf("append report: %w", err)
	}

	w.mu.Lock()
	w.lastExport = w.now()
	w.pending = false
	w.mu.Unlock()

	slog.InfoContext(ctx, "Report snapshot exported",
		"sheets_ref", ref,
		"health_score", report.HealthScore)

	return nil
}

// HasPending reports whether a deferred change is waiting for export
func (w *ExportWorker) HasPending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// RunPeriodic exports on the given interval until the context is cancelled.
// It also flushes deferred changes left behind by the debounce.
func (w *ExportWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Export worker started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Export worker stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.Export(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}

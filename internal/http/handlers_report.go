package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bilancio/internal/analysis"
	"bilancio/internal/core"
)

const reportCacheKey = "report:full"

// handleGetReport serves the analysis report, optionally windowed to
// ?from=YYYY-MM-DD&to=YYYY-MM-DD. Reports are cached briefly and
// invalidated on every write.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fromRaw := strings.TrimSpace(query.Get("from"))
	toRaw := strings.TrimSpace(query.Get("to"))

	cacheKey := reportCacheKey
	var from, to core.Date
	if fromRaw != "" || toRaw != "" {
		if fromRaw == "" || toRaw == "" {
			UnprocessableEntityError("from and to must be provided together").Write(w)
			return
		}
		var err error
		if from, err = parseDate(fromRaw); err != nil {
			UnprocessableEntityError("from must be YYYY-MM-DD").Write(w)
			return
		}
		if to, err = parseDate(toRaw); err != nil {
			UnprocessableEntityError("to must be YYYY-MM-DD").Write(w)
			return
		}
		if to.Before(from.Time) {
			UnprocessableEntityError("to must not precede from").Write(w)
			return
		}
		cacheKey = "report:" + fromRaw + ":" + toRaw
	}

	if report, found := s.reportCache.Get(cacheKey); found {
		slog.DebugContext(r.Context(), "Report cache hit", "cache_key", cacheKey)
		NewJSONResponse().Body(report).Write(w)
		return
	}

	// Bounded so a slow report never hangs the request.
	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	var (
		report analysis.Report
		err    error
	)
	if cacheKey == reportCacheKey {
		report, err = s.reports.BuildReport(ctx)
	} else {
		report, err = s.reports.BuildReportRange(ctx, from, to)
	}
	if err != nil {
		writeDomainError(w, r, "build_report", err)
		return
	}

	s.reportCache.Set(cacheKey, report)

	NewJSONResponse().Body(report).Write(w)
}

package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"bilancio/internal/analysis"
	"bilancio/internal/cache"
	"bilancio/internal/core"
	applog "bilancio/internal/log"
	"bilancio/internal/middleware/trace"
)

// Tracker is the write/read surface the API exposes over HTTP.
type Tracker interface {
	CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	ListTransactionsByMonth(ctx context.Context, year, month int) ([]core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	CreateTarget(ctx context.Context, t core.Target) (core.Target, error)
	ListTargets(ctx context.Context) ([]core.Target, error)
	ContributeToTarget(ctx context.Context, id int64, amount core.Money) (core.Target, error)
	DeleteTarget(ctx context.Context, id int64) error

	CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
	ListBudgets(ctx context.Context) ([]core.Budget, error)
	ListBudgetsByMonth(ctx context.Context, month, year int) ([]core.Budget, error)
	DeleteBudget(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]string, error)
}

// ReportBuilder produces the analysis report served by GET /api/report.
type ReportBuilder interface {
	BuildReport(ctx context.Context) (analysis.Report, error)
	BuildReportRange(ctx context.Context, from, to core.Date) (analysis.Report, error)
}

type Server struct {
	http.Server
	tracker Tracker
	reports ReportBuilder

	rateLimiter *rateLimiter
	tracer      *trace.Middleware

	// Read caches, invalidated on every write.
	reportCache       *cache.LRUCache[analysis.Report]
	transactionsCache *cache.LRUCache[[]core.Transaction]
	cacheManager      *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, tracker Tracker, reports ReportBuilder) *Server {
	mux := http.NewServeMux()

	s := &Server{
		tracker:           tracker,
		reports:           reports,
		rateLimiter:       newRateLimiter(),
		tracer:            trace.NewMiddleware(extractClientIP),
		reportCache:       cache.NewLRUCache[analysis.Report](10, 5*time.Minute),
		transactionsCache: cache.NewLRUCache[[]core.Transaction](50, 5*time.Minute),
		cacheManager:      cache.NewManager(),
	}
	s.Server = http.Server{
		Addr:    addr,
		Handler: s.tracer.Middleware(mux),
	}

	s.cacheManager.Register(s.reportCache)
	s.cacheManager.Register(s.transactionsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/transactions", s.withGuards(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/transactions", s.withGuards(s.handleListTransactions))
	mux.HandleFunc("GET /api/transactions/{id}", s.withGuards(s.handleGetTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withGuards(s.handleDeleteTransaction))

	mux.HandleFunc("POST /api/targets", s.withGuards(s.handleCreateTarget))
	mux.HandleFunc("GET /api/targets", s.withGuards(s.handleListTargets))
	mux.HandleFunc("POST /api/targets/{id}/contribute", s.withGuards(s.handleContributeToTarget))
	mux.HandleFunc("DELETE /api/targets/{id}", s.withGuards(s.handleDeleteTarget))

	mux.HandleFunc("POST /api/budgets", s.withGuards(s.handleCreateBudget))
	mux.HandleFunc("GET /api/budgets", s.withGuards(s.handleListBudgets))
	mux.HandleFunc("DELETE /api/budgets/{id}", s.withGuards(s.handleDeleteBudget))

	mux.HandleFunc("GET /api/categories", s.withGuards(s.handleListCategories))

	mux.HandleFunc("GET /api/report", s.withGuards(s.handleGetReport))

	return s
}

// withGuards adds security headers and rate limiting to API handlers.
// Mutating methods count against the per-client limit; reads pass through.
func (s *Server) withGuards(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := extractClientIP(r)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				applog.FieldComponent, applog.ComponentRateLimit,
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded").Write(w)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next(w, r)
	}
}

const transactionsCacheKey = "transactions:all"

// cachedTransactions answers list reads from cache when possible.
func (s *Server) cachedTransactions(r *http.Request) ([]core.Transaction, error) {
	if items, found := s.transactionsCache.Get(transactionsCacheKey); found {
		slog.DebugContext(r.Context(), "Transactions cache hit", "count", len(items))
		out := make([]core.Transaction, len(items))
		copy(out, items)
		return out, nil
	}

	items, err := s.tracker.ListTransactions(r.Context())
	if err != nil {
		return nil, err
	}

	s.transactionsCache.Set(transactionsCacheKey, items)
	return items, nil
}

// invalidateReadCaches drops every cached report and listing. Any write can
// shift aggregates, trends and the health score, so eviction is wholesale.
func (s *Server) invalidateReadCaches() {
	s.reportCache.DeletePrefix("report:")
	s.transactionsCache.DeletePrefix("transactions:")
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

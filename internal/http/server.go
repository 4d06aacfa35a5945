// Package http exposes the ledger operations as a JSON API, one endpoint
// per core operation. This layer owns everything the core refuses to do:
// binding requests, resolving named periods to concrete dates, and shaping
// raw aggregates for display.
package http

import (
	"net/http"
	"sync"
	"time"

	"kakeibo/internal/cache"
	"kakeibo/internal/log"
	"kakeibo/internal/middleware/trace"
	"kakeibo/internal/services"
)

// CacheConfig bounds the report response cache.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

type Server struct {
	http.Server

	ledger *services.LedgerService

	// Marshaled report responses keyed by endpoint and resolved range.
	// Cleared wholesale on any ledger mutation.
	reportCache  *cache.LRUCache[[]byte]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

func NewServer(addr string, ledger *services.LedgerService, logger *log.Logger, cacheCfg CacheConfig) *Server {
	s := &Server{
		ledger:       ledger,
		reportCache:  cache.NewLRUCache[[]byte](cacheCfg.Size, cacheCfg.TTL),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.reportCache)
	s.cacheManager.StartCleanup(cacheCfg.TTL)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("GET /api/reports/summary", s.handleSummaryReport)
	mux.HandleFunc("GET /api/reports/categories", s.handleCategoryReport)
	mux.HandleFunc("GET /api/reports/monthly", s.handleMonthlyReport)
	mux.HandleFunc("GET /api/reports/statistics", s.handleStatisticsReport)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	traceMw := trace.NewMiddleware()
	handler := log.Middleware(logger)(traceMw.Middleware(mux))

	s.Server = http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}

	return s
}

// StopBackground stops the cache cleanup goroutine. Called once during
// shutdown, after the listener is closed.
func (s *Server) StopBackground() {
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
	})
}

// invalidateReports drops every memoized report. Called by every mutation
// before it returns, so reads after a write never see stale aggregates.
func (s *Server) invalidateReports() {
	s.reportCache.Clear()
}

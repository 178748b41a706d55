// Package chi exposes the federated search engine over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fedsearch/internal/cache"
	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/resultmode"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/strategy"
	logpkg "github.com/kailas-cloud/fedsearch/internal/logger"
	"github.com/kailas-cloud/fedsearch/internal/metrics"
	federateduc "github.com/kailas-cloud/fedsearch/internal/usecase/federated"
	healthuc "github.com/kailas-cloud/fedsearch/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// SchemaCache is the memoized schema lookup the server can flush.
type SchemaCache interface {
	Clear()
	Size() int
}

// Server handles the federated search API.
type Server struct {
	federated     *federateduc.Service
	store         cache.Store
	schemas       SchemaCache
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	federated *federateduc.Service,
	store cache.Store,
	schemas SchemaCache,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		federated: federated,
		store:     store,
		schemas:   schemas,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNoCollections, http.StatusBadRequest, codeNoCollections),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrCollectionNotFound, http.StatusNotFound, codeCollectionNotFound),
		sentinelHandler(domain.ErrUnauthorized, http.StatusBadGateway, codeBackendAuth),
		sentinelHandler(domain.ErrBackendUnavailable, http.StatusBadGateway, codeBackendUnavailable),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chirouter.Router) {
	r.Post("/api/v1/search/federated", s.FederatedSearch)
	r.Delete("/api/v1/cache", s.ClearCache)
	r.Get("/api/v1/cache/stats", s.CacheStats)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// FederatedSearch handles POST /api/v1/search/federated.
func (s *Server) FederatedSearch(w http.ResponseWriter, r *http.Request) {
	var dto searchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req, err := requestFromDTO(dto)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	start := time.Now()
	resp, err := s.federated.SearchAll(r.Context(), req)
	recordFederated(string(req.Strategy()), time.Since(start), err)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if len(resp.Errors) > 0 {
		reqLog := logpkg.FromContext(r.Context())
		for name, msg := range resp.Errors {
			metrics.CollectionErrorsTotal.WithLabelValues(name).Inc()
			reqLog.Warn("collection search failed",
				zap.String("collection", name),
				zap.String("error", msg),
			)
		}
	}

	writeJSON(w, http.StatusOK, responseToDTO(resp))
}

// requestFromDTO validates the wire request into a domain request.
// Validation failures carry the ErrInvalidRequest sentinel so the error
// handler chain maps them to 400.
func requestFromDTO(dto searchRequestDTO) (request.Request, error) {
	cols := make([]request.Collection, 0, len(dto.Collections))
	for _, c := range dto.Collections {
		col, err := request.NewCollection(collectionFromDTO(c))
		if err != nil {
			return request.Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
		}
		cols = append(cols, col)
	}

	var hl *request.Highlight
	if dto.Highlight != nil {
		hl = &request.Highlight{
			StartTag:    dto.Highlight.StartTag,
			EndTag:      dto.Highlight.EndTag,
			AffixTokens: dto.Highlight.AffixTokens,
		}
	}

	req, err := request.New(
		dto.Query, cols,
		strategy.Strategy(dto.Strategy), resultmode.Mode(dto.Mode),
		dto.Limit, dto.NormalizeScores, hl,
	)
	if err != nil {
		if errors.Is(err, domain.ErrNoCollections) {
			return request.Request{}, err
		}
		return request.Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	return req, nil
}

// recordFederated records one federated request's count and duration.
func recordFederated(strategyLabel string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.FederatedRequestsTotal.WithLabelValues(strategyLabel, status).Inc()
	metrics.FederatedRequestDuration.WithLabelValues(strategyLabel).Observe(elapsed.Seconds())
}

// ClearCache handles DELETE /api/v1/cache.
// Flushes both the query cache and the memoized schemas.
func (s *Server) ClearCache(w http.ResponseWriter, r *http.Request) {
	s.store.Clear(r.Context())
	s.schemas.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// CacheStats handles GET /api/v1/cache/stats.
func (s *Server) CacheStats(w http.ResponseWriter, r *http.Request) {
	st := s.store.Stats(r.Context())
	writeJSON(w, http.StatusOK, cacheStatsDTO{
		Size:    st.Size,
		MaxSize: st.MaxSize,
		TTLSec:  ttlSeconds(st.TTL),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthToDTO(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNoCollections,
		domain.ErrInvalidRequest,
		domain.ErrCollectionNotFound,
		domain.ErrUnauthorized,
		domain.ErrBackendUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input decoding, engine calls, output serialization.
// The API NEVER performs tax math itself.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jacklambert122/NursingSalaryByStateComparison/core/compare"
	"github.com/jacklambert122/NursingSalaryByStateComparison/core/tax"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/logging"
)

// RequestIDHeader carries the per-request id
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// Options configures a Server
type Options struct {
	Version   string
	Reference string
	Sweep     compare.Range
}

// Server is the API server
type Server struct {
	registry *tax.Registry
	opts     Options
	mux      *http.ServeMux
	validate *validator.Validate
	log      *zap.Logger
}

// NewServer creates a new API server over an immutable registry
func NewServer(registry *tax.Registry, opts Options) *Server {
	if opts.Reference == "" {
		opts.Reference = tax.DefaultReference
	}
	if opts.Sweep.Step.IsZero() {
		opts.Sweep = compare.DefaultRange()
	}

	s := &Server{
		registry: registry,
		opts:     opts,
		mux:      http.NewServeMux(),
		validate: validator.New(),
		log:      logging.Named("api"),
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /tax", s.handleTax)
	s.mux.HandleFunc("POST /effective-rate", s.handleEffectiveRate)
	s.mux.HandleFunc("POST /rate-delta", s.handleRateDelta)
	s.mux.HandleFunc("POST /sweep", s.handleSweep)
	s.mux.HandleFunc("GET /jurisdictions", s.handleJurisdictions)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":        "healthy",
		"version":       s.opts.Version,
		"jurisdictions": s.registry.Len(),
		"time":          time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.opts.Version,
		"engine":      "statetax",
		"api_version": "v1",
	}, http.StatusOK)
}

// decode reads and validates a JSON request body, writing the error response on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.writeError(w, r, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code, message string, status int) {
	s.writeJSON(w, ErrorBody{Error: ErrorDetail{
		Code:      code,
		Message:   message,
		RequestID: requestID(r.Context()),
	}}, status)
}

// writeEngineError maps a typed engine error onto an HTTP status
func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.TypeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.TypeInvalidBracket, errors.TypeInput:
		status = http.StatusBadRequest
	case errors.TypeUnknownJurisdiction:
		status = http.StatusNotFound
	case errors.TypeOutOfRange, errors.TypeDivideByZero:
		status = http.StatusUnprocessableEntity
	case "":
		code = errors.TypeInternal
	}
	if status == http.StatusInternalServerError {
		s.log.Error("engine failure", zap.Error(err), zap.String("request_id", requestID(r.Context())))
	}
	s.writeError(w, r, string(code), err.Error(), status)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// statusRecorder captures the response status for access logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := uuid.NewString()
	w.Header().Set(RequestIDHeader, id)
	r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)

	s.log.Debug("request",
		zap.String("request_id", id),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("duration", time.Since(start)),
	)
}

// ListenAndServe starts the server and stops it when ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Package server exposes document generation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jonathan/document-generator/internal/logger"
	"github.com/jonathan/document-generator/internal/pipeline"
	"github.com/jonathan/document-generator/internal/server/ratelimit"
	"github.com/jonathan/document-generator/internal/types"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Generator produces a document for one request.
type Generator interface {
	GenerateWithProgress(ctx context.Context, req *types.Request, onProgress pipeline.ProgressCallback) (*pipeline.Result, error)
}

// Config holds server configuration
type Config struct {
	Port          int
	AllowedOrigin string
	// MaxConcurrent bounds simultaneous pipeline runs. A slot is held from the
	// model call through the browser render.
	MaxConcurrent  int64
	RequestTimeout time.Duration
	RateLimit      *ratelimit.Config
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	generator   Generator
	log         *logger.Logger
	cfg         Config
	slots       *semaphore.Weighted
	rateLimiter *ratelimit.Limiter
}

// errorBody is the JSON body of every failed request.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// New creates a new server instance
func New(cfg Config, generator Generator, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}

	s := &Server{
		generator:   generator,
		log:         log,
		cfg:         cfg,
		slots:       semaphore.NewWeighted(cfg.MaxConcurrent),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for model calls and rendering
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /generate/stream", s.handleGenerateStream)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withLogging(s.withCORS(s.withRateLimit(mux)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	defer s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// handleGenerate renders one document and returns the PDF as an attachment.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	result, err := s.generate(r.Context(), req, nil)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pipeline.Filename(req)))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PDF)))
	w.Header().Set("X-Request-ID", result.RequestID)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.PDF); err != nil {
		s.log.Warn("failed to write PDF response", "request_id", result.RequestID, "error", err)
	}
}

// handleGenerateStream reports pipeline progress as server-sent events and
// ends with the document.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	result, err := s.generate(r.Context(), req, func(event pipeline.ProgressEvent) {
		// block lists are large; clients only need the step
		event.Content = nil
		sse.WriteEvent("progress", event) //nolint:errcheck
	})
	if err != nil {
		s.log.Error("stream generation failed", "error", err)
		sse.WriteError(errorSummary(HTTPStatus(err)), err)
		return
	}

	sse.WriteComplete(CompleteEvent{
		RequestID:       result.RequestID,
		Filename:        pipeline.Filename(req),
		Pages:           result.Pages,
		UsedPlaceholder: result.UsedPlaceholder,
		PDF:             result.PDF,
	})
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*types.Request, error) {
	req, err := types.DecodeRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrBadRequest{Cause: err}
	}
	return req, nil
}

// generate runs the pipeline once a slot is free.
func (s *Server) generate(ctx context.Context, req *types.Request, onProgress pipeline.ProgressCallback) (*pipeline.Result, error) {
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return nil, &ErrBusy{Cause: err}
	}
	defer s.slots.Release(1)

	return s.generator.GenerateWithProgress(ctx, req, onProgress)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := s.cfg.AllowedOrigin
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceed the generation limit.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			retry := int(info.RetryAfter.Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			s.log.Warn("rate limit exceeded", "client", clientID(r), "path", r.URL.Path)
			s.jsonResponse(w, http.StatusTooManyRequests, errorBody{
				Error:   "Rate limit exceeded",
				Details: fmt.Sprintf("retry after %d seconds", retry),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request completed", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr, "elapsed", time.Since(start))
	})
}

// clientID extracts the client IP from RemoteAddr.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response with a status derived from err.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "status", status, "error", err)
	}
	s.jsonResponse(w, status, errorBody{Error: errorSummary(status), Details: err.Error()})
}

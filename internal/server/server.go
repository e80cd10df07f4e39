// Package server exposes the gateway over HTTP. Every response body is a
// result envelope, including request validation failures.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"ossgate/internal/errs"
	"ossgate/internal/metrics"
	"ossgate/internal/provider/registry"
	"ossgate/pkg/storage"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Upper bound on a request body; uploads are single-shot and held in memory
const maxRequestBytes = 64 << 20

const shutdownTimeout = 10 * time.Second

// StorageService is the envelope-producing surface the routes call
type StorageService interface {
	ListBuckets(ctx context.Context, cfg storage.Config) storage.Result[[]storage.BucketSummary]
	ListObjects(ctx context.Context, cfg storage.Config, params *storage.ListParams) storage.Result[[]storage.Item]
	Upload(ctx context.Context, cfg storage.Config, params storage.UploadParams) storage.Result[string]
	Download(ctx context.Context, cfg storage.Config, params storage.DownloadParams) storage.Result[[]byte]
	Delete(ctx context.Context, cfg storage.Config, params storage.DeleteParams) storage.Result[string]
	CreateFolder(ctx context.Context, cfg storage.Config, params storage.CreateFolderParams) storage.Result[string]
}

// request is the body of every operation route
type request[P any] struct {
	Config storage.Config `json:"config"`
	Params P              `json:"params"`
}

type HealthBody struct {
	Status string `json:"status"`
}

type Server struct {
	router   chi.Router
	svc      StorageService
	metrics  *metrics.Metrics
	logger   *slog.Logger
	validate *validator.Validate
}

func New(svc StorageService, m *metrics.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		svc:      svc,
		metrics:  m,
		logger:   logger.With("component", "server"),
		validate: validator.New(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.observe)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthBody{Status: "ok"})
	})
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}

	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/providers", func(w http.ResponseWriter, r *http.Request) {
			writeResult(w, storage.Envelope(registry.Catalogue(), nil, ""))
		})
		r.Post("/buckets/list", handle(s, func(ctx context.Context, cfg storage.Config, _ struct{}) storage.Result[[]storage.BucketSummary] {
			return s.svc.ListBuckets(ctx, cfg)
		}))
		r.Post("/objects/list", handle(s, s.svc.ListObjects))
		r.Post("/objects/upload", handle(s, s.svc.Upload))
		r.Post("/objects/download", handle(s, s.svc.Download))
		r.Post("/objects/delete", handle(s, s.svc.Delete))
		r.Post("/folders/create", handle(s, s.svc.CreateFolder))
	})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Listens on addr and serves until ctx is canceled
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serves on ln until ctx is canceled, then drains in-flight requests
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	s.logger.Info("HTTP server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %w", err)
	}
	return nil
}

// Decodes and validates a request, runs the operation and writes its envelope
func handle[P any, T any](s *Server, fn func(ctx context.Context, cfg storage.Config, params P) storage.Result[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request[P]
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeResult(w, storage.Failure[T](errs.Wrap(errs.KindInvalidInput, "invalid request body", err)))
			return
		}
		if err := s.validate.Struct(req); err != nil {
			writeResult(w, storage.Failure[T](errs.Wrap(errs.KindInvalidInput, "invalid request", err)))
			return
		}

		writeResult(w, fn(r.Context(), req.Config, req.Params))
	}
}

// Maps the envelope kind onto an HTTP status
func statusFor(kind string) int {
	switch kind {
	case "":
		return http.StatusOK
	case errs.KindConfig.String(), errs.KindInvalidInput.String():
		return http.StatusBadRequest
	case errs.KindTimeout.String():
		return http.StatusGatewayTimeout
	case errs.KindProvider.String():
		return http.StatusBadGateway
	case errs.KindCanceled.String():
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeResult[T any](w http.ResponseWriter, result storage.Result[T]) {
	status := http.StatusOK
	if !result.Success {
		status = statusFor(result.Kind)
	}
	writeJSON(w, status, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// Logs each request and counts it by route pattern
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		s.metrics.ObserveRequest(r.Method, route, status)
		s.logger.Debug("HTTP request", "method", r.Method, "route", route, "status", status, "duration", time.Since(start), "request_id", middleware.GetReqID(r.Context()))
	})
}

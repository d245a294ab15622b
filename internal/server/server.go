package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/GameDB_Go/internal/database"
	"github.com/osse101/GameDB_Go/internal/handler"
	"github.com/osse101/GameDB_Go/internal/inventory"
	"github.com/osse101/GameDB_Go/internal/item"
	"github.com/osse101/GameDB_Go/internal/logger"
	"github.com/osse101/GameDB_Go/internal/metrics"
	"github.com/osse101/GameDB_Go/internal/player"
)

const maxRequestBody = 1 << 20 // 1MB

type Server struct {
	httpServer       *http.Server
	dbPool           database.Pool
	inventoryService inventory.Service
	itemService      item.Service
	playerService    player.Service
}

// NewServer wires the operation routes for every service onto a chi router.
func NewServer(host string, port int, dbPool database.Pool, inventoryService inventory.Service, itemService item.Service, playerService player.Service) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(requestSizeLimitMiddleware(maxRequestBody))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	itemHandler := handler.NewItemHandler(itemService)
	playerHandler := handler.NewPlayerHandler(playerService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/inventory", func(r chi.Router) {
			r.Post("/load", inventoryHandler.HandleLoad)
			r.Post("/create", inventoryHandler.HandleCreate)
			r.Post("/save", inventoryHandler.HandleSave)
			r.Post("/split-stack", inventoryHandler.HandleSplitStack)
			r.Post("/transfer", inventoryHandler.HandleTransferItem)
			r.Post("/list", inventoryHandler.HandleList)
			r.Get("/describe", inventoryHandler.HandleDescribe)
		})

		r.Route("/item", func(r chi.Router) {
			r.Post("/load", itemHandler.HandleLoad)
			r.Post("/create", itemHandler.HandleCreate)
			r.Post("/save", itemHandler.HandleSave)
			r.Post("/destroy", itemHandler.HandleDestroy)
			r.Post("/list", itemHandler.HandleList)
			r.Get("/describe", itemHandler.HandleDescribe)
		})

		r.Route("/player", func(r chi.Router) {
			r.Post("/load", playerHandler.HandleLoad)
			r.Post("/create", playerHandler.HandleCreate)
			r.Post("/save", playerHandler.HandleSave)
			r.Post("/delete", playerHandler.HandleDelete)
			r.Post("/list", playerHandler.HandleList)
			r.Get("/describe", playerHandler.HandleDescribe)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:           dbPool,
		inventoryService: inventoryService,
		itemService:      itemService,
		playerService:    playerService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func requestSizeLimitMiddleware(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

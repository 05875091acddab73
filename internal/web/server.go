// Package web serves the note store's JSON API over HTTP.
package web

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jotpad/jot/internal/config"
	"github.com/jotpad/jot/internal/notify"
)

// NewServer creates and configures the HTTP server for the jot API.
func NewServer(db *sql.DB, cfg *config.Config, center *notify.Center, logger zerolog.Logger, bind string, port int) *http.Server {
	h := &Handlers{
		db:     db,
		cfg:    cfg,
		center: center,
		logger: logger,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /api/health", h.HandleHealth)

	mux.HandleFunc("GET /api/notes", h.HandleListNotes)
	mux.HandleFunc("POST /api/notes", h.HandleCreateNote)
	mux.HandleFunc("GET /api/notes/{id}", h.HandleGetNote)
	mux.HandleFunc("PUT /api/notes/{id}", h.HandleUpdateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", h.HandleTrashNote)
	mux.HandleFunc("POST /api/notes/{id}/restore", h.HandleRestoreNote)
	mux.HandleFunc("GET /api/notes/{id}/versions", h.HandleListVersions)
	mux.HandleFunc("POST /api/notes/{id}/restore-version", h.HandleRestoreVersion)
	mux.HandleFunc("GET /api/notes/{id}/preview", h.HandlePreview)
	mux.HandleFunc("POST /api/notes/bulk-trash", h.HandleBulkTrash)
	mux.HandleFunc("POST /api/notes/bulk-restore", h.HandleBulkRestore)

	mux.HandleFunc("GET /api/trash", h.HandleListTrash)
	mux.HandleFunc("DELETE /api/trash/{id}", h.HandlePurgeNote)
	mux.HandleFunc("POST /api/trash/bulk-delete", h.HandleBulkPurge)

	mux.HandleFunc("GET /api/folders", h.HandleListFolders)
	mux.HandleFunc("POST /api/folders", h.HandleCreateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", h.HandleDeleteFolder)

	mux.HandleFunc("GET /api/export", h.HandleExport)
	mux.HandleFunc("POST /api/import", h.HandleImport)

	mux.HandleFunc("GET /api/settings", h.HandleListSettings)
	mux.HandleFunc("GET /api/settings/{key}", h.HandleGetSetting)
	mux.HandleFunc("PUT /api/settings/{key}", h.HandleSetSetting)

	mux.HandleFunc("GET /api/notifications", h.HandleListNotifications)
	mux.HandleFunc("POST /api/notifications/{id}/read", h.HandleMarkNotificationRead)
	mux.HandleFunc("DELETE /api/notifications/{id}", h.HandleDismissNotification)
	mux.HandleFunc("DELETE /api/notifications", h.HandleClearNotifications)

	handler := securityHeaders(requestLogger(logger, mux))

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with method, path, status, and
// duration.
func requestLogger(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, logger zerolog.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info().Str("addr", srv.Addr).Msg("jot API running")

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		logger.Warn().Msg("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		logger.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

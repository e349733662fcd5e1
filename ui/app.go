package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"pricehypo/domain/dataset"
	"pricehypo/domain/run"
	"pricehypo/internal"
	"pricehypo/internal/report"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxUploadBytes caps a single uploaded dataset
const maxUploadBytes = 32 << 20

// Analyzer is the pipeline entry point the HTTP surface needs
type Analyzer interface {
	RecordReader(ctx context.Context, name string, r io.Reader, format dataset.Format) run.Record
}

// App serves the analysis endpoint
type App struct {
	router   *chi.Mux
	analyzer Analyzer
	logger   *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates a new HTTP application
func NewApp(analyzer Analyzer, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	app := &App{
		router:   chi.NewRouter(),
		analyzer: analyzer,
		logger:   logger.With("ui"),
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Post("/api/analyze", a.handleAnalyze)
}

// ServeHTTP lets the app be mounted or tested directly
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Start starts the HTTP server and blocks until ctx is cancelled or the listener fails
func (a *App) Start(ctx context.Context, config Config) error {
	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening on %s", srv.Addr)
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

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// handleAnalyze runs the pipeline on an uploaded dataset. Pipeline failures
// come back as 200 with the error key set; only malformed requests get 400.
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	format := report.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := report.ParseFormat(f)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = parsed
	}

	name, body, err := readUpload(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dataFormat := dataset.FormatFromPath(name)
	if t := r.URL.Query().Get("type"); t != "" {
		parsed, ok := dataset.ParseFormat(t)
		if !ok {
			http.Error(w, fmt.Sprintf("unknown dataset type %q", t), http.StatusBadRequest)
			return
		}
		dataFormat = parsed
	}

	rec := a.analyzer.RecordReader(r.Context(), name, bytes.NewReader(body), dataFormat)
	a.logger.Debug("run %s on %s finished in %dms", rec.ID, name, rec.DurationMs)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Run-ID", rec.ID.String())
	if err := report.Write(w, format, rec.Outcome); err != nil {
		a.logger.Error("failed to write report: %v", err)
	}
}

// readUpload takes the multipart "file" field when present, otherwise the raw body
func readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return "", nil, fmt.Errorf("invalid multipart form: %w", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, fmt.Errorf("missing form file \"file\": %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read upload: %w", err)
		}
		return filepath.Base(header.Filename), data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("empty request body")
	}
	return "upload.csv", data, nil
}

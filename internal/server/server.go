package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lkoehler/ladeplan/internal/common"
	"github.com/lkoehler/ladeplan/internal/export"
	"github.com/lkoehler/ladeplan/internal/pipeline"
	"github.com/lkoehler/ladeplan/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server wires the upload pipeline, the session store and the exporter
// behind the web UI.
type Server struct {
	cfg       *common.Config
	processor *pipeline.Processor
	store     *session.Store
	exporter  *export.Service
	logger    *slog.Logger
	engine    *gin.Engine
}

func New(cfg *common.Config, processor *pipeline.Processor, store *session.Store, exporter *export.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:       cfg,
		processor: processor,
		store:     store,
		exporter:  exporter,
		logger:    logger,
	}
	s.engine = s.buildEngine()
	return s
}

func (s *Server) buildEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	engine.MaxMultipartMemory = s.cfg.Upload.MaxUploadBytes

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"kg": formatWeight,
	}).ParseFS(templatesFS, "templates/*.html"))
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/", s.handleIndex)
	engine.POST("/upload", s.handleUpload)
	engine.GET("/plans/:id", s.handlePlanView)
	engine.GET("/plans/:id/export", s.handleExport)
	engine.GET("/api/plans/:id", s.handlePlanJSON)
	engine.GET("/healthz", s.handleHealthz)
	return engine
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server.listen", "addr", s.cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server.stopped")
	return <-errCh
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.NewString()
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), reqID))

		c.Next()

		s.logger.Info("http.request",
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}

func formatWeight(w *float64) string {
	if w == nil {
		return "–"
	}
	return fmt.Sprintf("%.1f", *w)
}

// =============================================================================
// Price Update Preparation Tool - HTTP Server
// =============================================================================
//
// REST surface over the editing pipeline. A browser creates a session, pastes
// rows into it, refreshes marketplace status from the reference sheet, reads
// back validation results and finally downloads the filled upload workbook.
//
// =============================================================================

package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priceops/priceprep/internal/config"
	"github.com/priceops/priceprep/internal/refsheet"
	"github.com/priceops/priceprep/internal/rowtable"
	"github.com/priceops/priceprep/internal/template"
	"github.com/priceops/priceprep/internal/validation"
	"github.com/priceops/priceprep/pkg/logger"
)

// sweepInterval is how often idle sessions are collected.
const sweepInterval = 5 * time.Minute

// SheetResolver resolves a session's rows against the remote status sheet.
type SheetResolver interface {
	Resolve(ctx context.Context, link string, table *rowtable.Table) error
}

// WorkbookWriter checks for and fills the marketplace upload template.
type WorkbookWriter interface {
	Check() error
	Fill(rows []validation.WritableRow) (*bytes.Buffer, error)
}

// Server wires the session registry, resolver and template writer behind a
// gin router.
type Server struct {
	cfg      *config.Config
	log      *zap.Logger
	resolver SheetResolver
	writer   WorkbookWriter
	sessions *SessionStore
	policy   validation.Policy
}

// New assembles a Server from loaded configuration and its collaborators.
func New(cfg *config.Config, log *zap.Logger, resolver SheetResolver, writer WorkbookWriter) *Server {
	return &Server{
		cfg:      cfg,
		log:      log,
		resolver: resolver,
		writer:   writer,
		sessions: NewSessionStore(cfg.SessionTTL()),
		policy:   validation.ParsePolicy(cfg.UnpublishedPolicy),
	}
}

// Router builds the gin engine with middleware and all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger(s.log))
	router.Use(cors.Default())

	router.GET("/status", s.handleStatus)

	sessions := router.Group("/sessions")
	{
		sessions.POST("", s.handleCreateSession)
		sessions.GET("/:id", s.handleGetSession)
		sessions.DELETE("/:id", s.handleDeleteSession)
		sessions.PUT("/:id/rows", s.handleSetRows)
		sessions.PUT("/:id/row-count", s.handleSetRowCount)
		sessions.POST("/:id/refresh", s.handleRefresh)
		sessions.GET("/:id/validation", s.handleValidation)
		sessions.POST("/:id/download", s.handleDownload)
	}

	return router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.Router(),
	}

	go s.sweepLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.cfg.ListenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.log.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.sessions.Sweep(); removed > 0 {
				s.log.Debug("expired sessions removed", zap.Int("count", removed))
			}
		}
	}
}

// writeError maps pipeline errors onto HTTP statuses.
func (s *Server) writeError(c *gin.Context, err error) {
	var schemaErr *refsheet.SchemaError
	var fetchErr *refsheet.FetchError
	var missingErr *template.MissingError

	switch {
	case errors.Is(err, refsheet.ErrInvalidSheetLink):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &schemaErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &fetchErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.As(err, &missingErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		s.log.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

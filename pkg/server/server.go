// Package server exposes the dashboard over HTTP: proxy routes in front of
// the remote design-file API, the per-client reference store, and the
// reconciliation engine's combined file list.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"figdash/pkg/cache"
	"figdash/pkg/config"
	"figdash/pkg/figma"
	"figdash/pkg/log"
	"figdash/pkg/models"
	"figdash/pkg/reconciler"
	"figdash/pkg/refstore"
)

const shutdownTimeout = 10

// Gateway is the outbound remote-API surface the handlers need. Satisfied by
// *figma.Client; tests substitute counting fakes.
type Gateway interface {
	Me(ctx context.Context) (*models.User, error)
	TeamProjects(ctx context.Context, teamID string) ([]models.Project, error)
	ProjectFiles(ctx context.Context, projectID string) ([]models.RemoteFile, error)
	File(ctx context.Context, key string) (*models.FileDetail, error)
	FileImages(ctx context.Context, key, format string, scale float64) (map[string]string, error)
	TeamFiles(ctx context.Context, teamID string) ([]models.FileReference, error)
	TeamDetails(ctx context.Context, teamID string) (*models.TeamDetail, error)
	VerifyFile(ctx context.Context, key string) (*models.FileReference, error)
}

// Server wires the HTTP routes to the cache, the reference store and the
// engine.
type Server struct {
	cfg      *config.Config
	echo     *echo.Echo
	validate *validator.Validate
	cache    *cache.Cache
	store    *refstore.Store
	engine   *reconciler.Engine
	version  string

	// newGateway builds a client for a resolved token. Swappable in tests.
	newGateway func(token string) (Gateway, error)
}

// New creates the server. All collaborators are injected; nothing here
// reaches for globals.
func New(cfg *config.Config, c *cache.Cache, store *refstore.Store, engine *reconciler.Engine, version string) *Server {
	return &Server{
		cfg:      cfg,
		echo:     echo.New(),
		validate: validator.New(),
		cache:    c,
		store:    store,
		engine:   engine,
		version:  version,
		newGateway: func(token string) (Gateway, error) {
			return figma.NewClient(cfg.FigmaAPIBase, token, cfg.RetryMax, cfg.RequestTimeout)
		},
	}
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start(addr string) error {
	s.setupRoutes()

	go func() {
		log.Info().
			Str("addr", addr).
			Str("version", s.version).
			Bool("token_configured", s.cfg.HasToken()).
			Msg("Starting dashboard server")

		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return s.Shutdown()
}

// Shutdown stops the HTTP listener, the auto-sync loop, and waits for
// in-flight background pushes so no accepted mutation is lost.
func (s *Server) Shutdown() error {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout*time.Second)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	s.engine.StopAutoSync()
	s.engine.Wait()

	log.Info().Msg("Shutdown complete")
	return nil
}

func (s *Server) setupRoutes() {
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} ${status} ${method} ${uri} (${latency_human})\n",
	}))
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())

	// Proxy routes in front of the remote API.
	s.echo.GET("/api/figma/user", s.getUser)
	s.echo.GET("/api/figma/projects", s.getProjects)
	s.echo.GET("/api/figma/files", s.getProjectFiles)
	s.echo.GET("/api/figma/drafts", s.getDrafts)
	s.echo.GET("/api/figma/teams", s.discoverTeams)
	s.echo.GET("/api/figma/server-token", s.getServerToken)
	s.echo.POST("/api/figma/team", s.pullTeam)
	s.echo.POST("/api/figma/verify", s.verifyFile)
	s.echo.POST("/api/figma/thumbnail", s.getThumbnail)

	// Per-client reference store.
	s.echo.GET("/api/figma/user-drafts", s.listUserDrafts)
	s.echo.POST("/api/figma/user-drafts", s.mutateUserDrafts)
	s.echo.DELETE("/api/figma/user-drafts", s.clearUserDrafts)

	// Combined working set owned by the engine.
	s.echo.GET("/api/files", s.getFiles)
	s.echo.POST("/api/files", s.addFile)
	s.echo.DELETE("/api/files/:key", s.removeFile)
	s.echo.DELETE("/api/files", s.clearFiles)
	s.echo.POST("/api/files/sync", s.syncFiles)
	s.echo.POST("/api/files/autosync", s.setAutoSync)
}

// gateway resolves the per-request token (header overrides the configured
// default) and builds an outbound client. ErrTokenMissing when neither is
// set; no outbound call is ever made without a token.
func (s *Server) gateway(ctx echo.Context) (Gateway, error) {
	token := ctx.Request().Header.Get("X-Figma-Token")
	if token == "" {
		token = s.cfg.FigmaToken
	}
	if token == "" {
		return nil, figma.ErrTokenMissing
	}
	return s.newGateway(token)
}

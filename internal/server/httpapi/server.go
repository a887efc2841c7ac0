// Package httpapi exposes the file store and clipboards as a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/clipboard"
	"github.com/dmitrijs2005/filekeeper/internal/server/credentials"
	"github.com/dmitrijs2005/filekeeper/internal/server/filestore"
	"github.com/dmitrijs2005/filekeeper/internal/server/personal"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Services are the components the API serves.
type Services struct {
	Files       *filestore.Store
	Clipboard   *clipboard.Service
	Personal    *personal.Service
	Credentials *credentials.Store
}

type Server struct {
	address         string
	echo            *echo.Echo
	services        Services
	logger          logging.Logger
	jwtSecret       []byte
	tokenValidity   time.Duration
	shutdownTimeout time.Duration
}

func NewServer(address string, l logging.Logger, services Services, secretKey string, tokenValidity, shutdownTimeout time.Duration) *Server {
	s := &Server{
		address:         address,
		echo:            echo.New(),
		services:        services,
		logger:          l.With("module", "http_server"),
		jwtSecret:       []byte(secretKey),
		tokenValidity:   tokenValidity,
		shutdownTimeout: shutdownTimeout,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.errorHandler
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo
	e.Use(middleware.Recover())
	e.Use(s.requestLogger)

	e.POST("/api/login", s.login)
	e.GET("/download/:name", s.downloadFile)
	e.GET("/clipboard/public/:id", s.getPublicClipboardItem)

	api := e.Group("/api")
	api.Use(s.accessTokenMiddleware)

	api.GET("/storage", s.storageInfo)
	api.GET("/files", s.listFiles)
	api.POST("/files", s.uploadFiles)
	api.POST("/files/delete", s.deleteFiles)
	api.GET("/files/:name/preview", s.previewFile)
	api.DELETE("/files/:name", s.deleteFile)

	api.GET("/clipboard", s.listClipboard)
	api.POST("/clipboard", s.addClipboardItem)
	api.GET("/clipboard/:id", s.getClipboardItem)
	api.DELETE("/clipboard/:id", s.deleteClipboardItem)

	api.GET("/personal", s.listPersonal)
	api.POST("/personal", s.createPersonal)
	api.GET("/personal/:id", s.getPersonal)
	api.PUT("/personal/:id", s.updatePersonal)
	api.DELETE("/personal/:id", s.deletePersonal)
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.echo.Start(s.address)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

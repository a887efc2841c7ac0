// Package server wires the storage components and the HTTP API together
// and runs them until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/filekeeper/internal/filex"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/clipboard"
	"github.com/dmitrijs2005/filekeeper/internal/server/config"
	"github.com/dmitrijs2005/filekeeper/internal/server/credentials"
	"github.com/dmitrijs2005/filekeeper/internal/server/filestore"
	"github.com/dmitrijs2005/filekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/filekeeper/internal/server/personal"
	"github.com/dmitrijs2005/filekeeper/internal/server/preview"
)

type App struct {
	config *config.Config
	logger logging.Logger
	http   *httpapi.Server
}

// NewApp builds every component from c. Log output goes to w.
func NewApp(c *config.Config, w io.Writer) (*App, error) {
	logger := logging.NewZerolog(w, c.LogLevel, c.LogFormat)
	ctx := context.Background()

	files, err := filestore.New(c.StorageRoot, c.MaxStorageBytes,
		preview.NewReader(c.PreviewMaxBytes, c.PreviewMaxChars), logger,
		clipboard.DocumentName, personal.DocumentName)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	docDir, err := filex.EnsureDir(c.DocumentDir())
	if err != nil {
		return nil, fmt.Errorf("data dir init error: %w", err)
	}

	creds, err := newCredentials(c)
	if err != nil {
		return nil, fmt.Errorf("credentials init error: %w", err)
	}
	if c.AdminPasswordHash == "" {
		logger.Warn(ctx, "admin password loaded from plaintext setting; set ADMIN_PASSWORD_HASH in production")
	}

	services := httpapi.Services{
		Files:       files,
		Clipboard:   clipboard.NewService(docDir, nil, logger),
		Personal:    personal.NewService(docDir, nil, logger),
		Credentials: creds,
	}
	srv := httpapi.NewServer(c.EndpointAddrHTTP, logger, services, c.SecretKey,
		c.AccessTokenValidityDuration, c.ShutdownTimeout)

	logger.Info(ctx, "storage ready", "root", files.Root(), "data_dir", docDir, "max_bytes", c.MaxStorageBytes)
	return &App{config: c, logger: logger, http: srv}, nil
}

func newCredentials(c *config.Config) (*credentials.Store, error) {
	creds := credentials.NewStore()
	if c.AdminPasswordHash != "" {
		if err := creds.AddHash(c.AdminUsername, c.AdminPasswordHash); err != nil {
			return nil, err
		}
		return creds, nil
	}
	creds.AddPassword(c.AdminUsername, c.AdminPassword)
	return creds, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

// Package app wires configuration, logging, the store and the admin console
// together and owns the store handle for the lifetime of the process.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/accountstore/internal/config"
	"github.com/dmitrijs2005/accountstore/internal/console"
	"github.com/dmitrijs2005/accountstore/internal/logging"
	"github.com/dmitrijs2005/accountstore/internal/repositories/repomanager"
	"github.com/dmitrijs2005/accountstore/internal/services"
)

// openRepositories is a test seam for repomanager.Open.
var openRepositories = repomanager.Open

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	console *console.Console
}

// NewApp connects to the configured store and prepares the console on
// in/out. Logs go to logOut. The caller must Close the App.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger, err := logging.New(logOut, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, err
	}

	openCtx, cancel := context.WithTimeout(ctx, c.OperationTimeout)
	defer cancel()

	repos, err := openRepositories(openCtx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	svc := services.NewUserService(repos, logger)

	return &App{
		config:  c,
		logger:  logger,
		repos:   repos,
		console: console.New(svc, logger, in, out, c.OperationTimeout),
	}, nil
}

// NewStdApp is NewApp on the process's standard streams.
func NewStdApp(ctx context.Context, c *config.Config) (*App, error) {
	return NewApp(ctx, c, os.Stdin, os.Stdout, os.Stderr)
}

// Run blocks until the console exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info(ctx, "Starting app...", "storage", a.config.Storage)
	return a.console.Run(ctx)
}

// Close releases the store handle.
func (a *App) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.config.OperationTimeout)
	defer cancel()

	if err := a.repos.Close(ctx); err != nil {
		a.logger.Error(ctx, "storage close error", "error", err)
		return err
	}
	a.logger.Info(ctx, "Storage closed")
	return nil
}

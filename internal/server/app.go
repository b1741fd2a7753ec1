// Package server initializes and runs the entry store. It opens the
// database, applies migrations, wires the services and the HTTP surface,
// and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dkomarov/garagehub/internal/logging"
	"github.com/dkomarov/garagehub/internal/server/config"
	serverhttp "github.com/dkomarov/garagehub/internal/server/http"
	"github.com/dkomarov/garagehub/internal/server/repositories/repomanager"
	"github.com/dkomarov/garagehub/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *http.Server
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	garage := services.NewGarageService(db, rm, logger)
	presign := services.NewPresignService(c)

	handler := serverhttp.NewHandler(garage, presign, logger)
	router := serverhttp.NewRouter(handler, c.SecretKey)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: &http.Server{Addr: c.EndpointAddr, Handler: router},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until the context is cancelled or a signal arrives, then
// drains in-flight requests and closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting entry store", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, "server error", "error", err.Error())
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}

	app.logger.Info(ctx, "Entry store stopped")
}

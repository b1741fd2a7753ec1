package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dkomarov/garagehub/internal/client/api"
	"github.com/dkomarov/garagehub/internal/client/assembler"
	"github.com/dkomarov/garagehub/internal/client/config"
	"github.com/dkomarov/garagehub/internal/client/models"
	"github.com/dkomarov/garagehub/internal/client/storage"
	"github.com/dkomarov/garagehub/internal/common"
)

const sessionTokenKey = "token"

// App ties the CLI together: config, the entry store API client, persisted
// session state, and the cached copy of the user's garage. The cache is
// refreshed wholesale after every successful mutation.
type App struct {
	config    *config.Config
	api       *api.Client
	session   storage.KV
	assembler *assembler.Assembler

	cars     []models.CarEntry
	loggedIn bool

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires an App from config. A previously saved token is restored
// from the session store so the user stays logged in between runs.
func NewApp(c *config.Config) (*App, error) {
	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	session, err := storage.NewFileKV(filepath.Join(c.DataDir, "session.json"))
	if err != nil {
		return nil, err
	}

	apiClient := api.New(c.ServerEndpoint, c.S3Bucket, c.S3Region)

	a := &App{
		config:    c,
		api:       apiClient,
		session:   session,
		assembler: assembler.New(apiClient),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}

	if tok, err := session.Get(sessionTokenKey); err == nil && tok != "" {
		apiClient.SetToken(tok)
		a.loggedIn = true
	}

	return a, nil
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

// refresh replaces the garage cache with the store's current view.
func (a *App) refresh(ctx context.Context) error {
	cars, err := a.api.UserCars(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			a.loggedIn = false
		}
		return err
	}
	a.cars = cars
	return nil
}

package cmd

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/myhours-cli/internal/config"
	"github.com/Tiliavir/myhours-cli/internal/myhours"
	"github.com/Tiliavir/myhours-cli/internal/session"
	"github.com/Tiliavir/myhours-cli/internal/storage"
)

const requestTimeout = 30 * time.Second

// app bundles what every command needs: configuration, the session manager
// and the unauthenticated API client.
type app struct {
	cfg      config.Config
	log      *log.Logger
	sessions *session.Manager
	client   *myhours.Client
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr())

	client := myhours.NewClient(cfg.API.BaseURL, &http.Client{Timeout: requestTimeout})
	sessions := session.NewManager(
		newStore(cfg),
		client,
		session.NewTerminalPrompter(os.Stdin, cmd.ErrOrStderr()),
		session.WithLogger(logger),
	)
	logger.Printf("config: api %s, credentials %s", cfg.API.BaseURL, cfg.Credentials.Backend)
	return &app{cfg: cfg, log: logger, sessions: sessions, client: client}, nil
}

func newLogger(w io.Writer) *log.Logger {
	if !verbose {
		w = io.Discard
	}
	return log.New(w, "", log.Ltime)
}

func newStore(cfg config.Config) session.Store {
	if cfg.Credentials.Backend == config.BackendKeyring {
		return storage.NewKeyringStore()
	}
	return storage.NewFileStore(cfg.Credentials.Path)
}

// api authenticates before returning the authorized client so the login
// prompt, if any, appears before the first request.
func (a *app) api(ctx context.Context) (*myhours.Client, error) {
	if _, err := a.sessions.EnsureAuthenticated(ctx); err != nil {
		return nil, err
	}
	return a.client.WithTokenSource(ctx, a.sessions.TokenSource(ctx)), nil
}

package commands

import (
	"context"
	"errors"

	"github.com/clipstream/clipstream/internal/api"
	"github.com/clipstream/clipstream/internal/config"
	"github.com/clipstream/clipstream/internal/credentials"
	"github.com/clipstream/clipstream/internal/page"
	"github.com/clipstream/clipstream/internal/session"
)

type Globals struct {
	Debug   bool
	Version string
}

// ErrNotLoggedIn is returned by authenticated commands when no live
// session exists.
var ErrNotLoggedIn = errors.New(`not logged in: run "clipstream-cli login"`)

// ClientFlags are the connection flags shared by every command.
type ClientFlags struct {
	Server   string `help:"Server URL (overrides config file)" env:"CLIPSTREAM_SERVER"`
	Config   string `help:"Path to config file" env:"CLIPSTREAM_CONFIG"`
	CredsDir string `help:"Credentials directory" env:"CLIPSTREAM_CREDS_DIR" hidden:""`
}

// App bundles the shared services a command runs against.
type App struct {
	Config   *config.Config
	API      *api.Client
	Sessions *session.Manager
}

func (f *ClientFlags) app() (*App, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return nil, err
	}
	if f.Server != "" {
		cfg.ServerURL = f.Server
	}

	client, err := api.New(api.Config{
		ServerURL: cfg.ServerURL,
		CacheDir:  cfg.CacheDir,
	})
	if err != nil {
		return nil, err
	}

	store, err := credentials.NewStore(f.CredsDir)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		API:      client,
		Sessions: session.NewManager(store),
	}, nil
}

// fetchAuthed runs fetch through the auth-gated page controller and
// unwraps the settled state: content data, a login prompt, or the fetch
// error with its retry left to the user.
func fetchAuthed[T any](ctx context.Context, app *App, fetch page.FetchFunc[T]) (T, error) {
	ctrl := page.New(app.Sessions, fetch)
	ctrl.Activate(ctx)
	defer ctrl.Deactivate()

	snap := ctrl.WaitSettled(ctx)
	switch snap.State {
	case page.StateContent:
		return snap.Data, nil
	case page.StateUnauthenticated:
		var zero T
		return zero, ErrNotLoggedIn
	default:
		var zero T
		if snap.Err != nil {
			return zero, snap.Err
		}
		return zero, ctx.Err()
	}
}

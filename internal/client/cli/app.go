package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/agrivision/agrivision/internal/client/api"
	"github.com/agrivision/agrivision/internal/client/config"
	"github.com/agrivision/agrivision/internal/client/session"
	"github.com/agrivision/agrivision/internal/client/store"
	"github.com/agrivision/agrivision/internal/logging"
)

// sessionService is the slice of the session manager the CLI needs.
type sessionService interface {
	Snapshot() session.Snapshot
	Hydrate(ctx context.Context)
	Login(ctx context.Context, email, password string, rememberMe bool) error
	Register(ctx context.Context, req session.RegisterRequest) error
	Logout(ctx context.Context) error
	HasPermission(name string) bool
}

// backend is the slice of the HTTP facade the views fetch through.
type backend interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	GetPublic(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
}

type App struct {
	config  *config.Config
	session sessionService
	backend backend
	store   store.Store
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer

	// one in-flight submission per form
	submittingYield      bool
	submittingFertilizer bool
	submittingIrrigation bool
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing local store: %w", err)
	}

	client := api.New(cfg.APIBaseURL, api.WithLogger(logger))
	manager := session.NewManager(client, st, logger)

	return &App{
		config:  cfg,
		session: manager,
		backend: client,
		store:   st,
		log:     logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run hydrates the session and enters the REPL. Hydration always completes
// before the first command is read, so no protected view can run while the
// session is loading.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.store.Close() }()

	a.println(titleStyle.Render("AgriVision — agricultural advisory client"))
	a.println(mutedStyle.Render("type 'help' for commands"))

	a.session.Hydrate(ctx)

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isAuthenticated() bool {
	snap := a.session.Snapshot()
	return snap.IsAuthenticated
}

// status renders the prompt suffix: the signed-in email or session state.
func (a *App) status() string {
	snap := a.session.Snapshot()
	switch {
	case snap.IsLoading:
		return "(loading)"
	case snap.IsAuthenticated:
		return "(" + snap.User.Email + ")"
	default:
		return "(signed out)"
	}
}

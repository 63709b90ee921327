// Package cli holds the fundsight subcommands. Every command works on the
// same session store the web front uses, so a login from the terminal is
// picked up by a running server that shares the storage driver.
package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/epeers/fundsight/config"
	"github.com/epeers/fundsight/internal/fundapi"
	"github.com/epeers/fundsight/internal/state"
	"github.com/epeers/fundsight/internal/storage"
	"github.com/epeers/fundsight/internal/views"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

// Commands lists every subcommand in help order
var Commands = []subcommands.Command{
	&serveCmd{},
	&loginCmd{},
	&logoutCmd{},
	&summaryCmd{},
	&fundsCmd{},
}

// Register adds the subcommands and the builtin help commands to c
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// app is the wiring shared by every command
type app struct {
	cfg     *config.Config
	storage storage.Storage
	store   *state.Store
	client  *fundapi.Client
	format  views.Formatter
}

// openApp loads the configuration, opens session storage and restores any
// persisted session.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel)

	st, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s session storage: %w", cfg.StorageDriver, err)
	}

	// The client reads the token from the store, so the store comes first
	store := state.NewStore(nil, st)
	client := fundapi.NewClient(cfg.APIURL,
		fundapi.WithAuthScheme(cfg.AuthScheme),
		fundapi.WithTokenSource(store.Token),
	)
	store.SetAPI(client)
	store.Subscribe(sessionLogger())

	if err := store.Restore(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	return &app{
		cfg:     cfg,
		storage: st,
		store:   store,
		client:  client,
		format:  views.NewFormatter(cfg.Currency),
	}, nil
}

func (a *app) Close() {
	if err := a.storage.Close(); err != nil {
		log.Warnf("Failed to close session storage: %v", err)
	}
}

// sessionLogger logs sign in and sign out transitions, whichever command
// or request caused them.
func sessionLogger() state.Listener {
	var mu sync.Mutex
	authenticated := false
	return func(st state.State) {
		mu.Lock()
		defer mu.Unlock()
		if st.Session.Authenticated == authenticated {
			return
		}
		authenticated = st.Session.Authenticated
		if authenticated {
			log.WithField("user", st.Session.User.DisplayName()).Debug("Session started")
		} else {
			log.Debug("Session ended")
		}
	}
}

func setLogLevel(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

// withApp opens the app for the duration of fn and maps its error to an
// exit status.
func withApp(ctx context.Context, fn func(a *app) error) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		log.Error(err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := fn(a); err != nil {
		log.Error(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// requireSession fails commands that need a login
func requireSession(ctx context.Context, a *app) error {
	if !a.store.HasSession(ctx) {
		return fmt.Errorf("not logged in, run: fundsight login -email <email>")
	}
	return nil
}

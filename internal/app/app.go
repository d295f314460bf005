// Package app wires the session store, API client and services together.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mlbahja/blogger/internal/account"
	"github.com/mlbahja/blogger/internal/guard"
	"github.com/mlbahja/blogger/internal/notify"
	"github.com/mlbahja/blogger/internal/session"
	"github.com/mlbahja/blogger/internal/session/drivers/memory"
	"github.com/mlbahja/blogger/internal/session/drivers/sqlite"
	"github.com/mlbahja/blogger/pkg/blogsdk"
	"github.com/mlbahja/blogger/pkg/slogx"
	"golang.org/x/time/rate"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application holds every long-lived dependency of a CLI invocation.
type Application struct {
	cfg    Config
	logger *slog.Logger

	store     session.Store
	Session   *session.Manager
	Navigator *guard.Recorder

	Client  *blogsdk.Client
	Account *account.Service
	Notify  *notify.Service
	Counter *notify.Counter
}

// Option customises New, mostly for tests.
type Option func(*options)

type options struct {
	logWriter io.Writer
	store     session.Store
}

// WithLogWriter redirects log output.
func WithLogWriter(w io.Writer) Option {
	return func(o *options) { o.logWriter = w }
}

// WithStore uses store instead of opening one from the config.
func WithStore(store session.Store) Option {
	return func(o *options) { o.store = store }
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config, opts ...Option) (*Application, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "blogger",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Writer:  o.logWriter,
		}),
		Navigator: &guard.Recorder{},
	}

	store := o.store
	if store == nil {
		var err error
		if store, err = app.openStore(); err != nil {
			return nil, err
		}
	}
	if cfg.SessionKey != "" {
		sealed, err := session.NewSealedStore(store, []byte(cfg.SessionKey))
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to initialize session sealing: %w", err)
		}
		store = sealed
	}
	app.store = store

	app.Session = session.NewManager(store, session.WithLogger(app.logger))
	app.initClient()
	app.initServices()

	return app, nil
}

func (app *Application) Config() Config { return app.cfg }

func (app *Application) Logger() *slog.Logger { return app.logger }

// Close releases the session store.
func (app *Application) Close() error {
	if err := app.store.Close(); err != nil {
		app.logger.Error("error closing session store", "error", err)
		return err
	}
	return nil
}

// openStore opens the SQLite session file and applies migrations, or an
// in-memory store in ephemeral mode.
func (app *Application) openStore() (session.Store, error) {
	if app.cfg.Ephemeral {
		return memory.New(), nil
	}

	if dir := filepath.Dir(app.cfg.SessionDB); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.SessionDB))
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply session migrations: %w", err)
	}

	app.logger.Debug("session store ready", "path", app.cfg.SessionDB)
	return db, nil
}

func (app *Application) initClient() {
	var limiter *rate.Limiter
	if app.cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(app.cfg.RateLimit), app.cfg.RateLimit)
	}

	app.Client = blogsdk.NewClient(app.cfg.APIURL)
	app.Client.HTTPClient.Timeout = app.cfg.HTTPTimeout
	app.Client.HTTPClient.Transport = &blogsdk.AuthTransport{
		Base:        &slogx.Transport{Logger: app.logger},
		Credentials: app.Session,
		Navigator:   app.Navigator,
		Limiter:     limiter,
		Logger:      app.logger,
	}
}

func (app *Application) initServices() {
	app.Account = account.NewService(app.Client, app.Session, app.Navigator, app.logger)
	app.Counter = &notify.Counter{}
	app.Notify = notify.NewService(app.Client, app.Counter)
}

// NewPoller returns an unstarted unread-count poller using the configured
// interval.
func (app *Application) NewPoller() *notify.Poller {
	return app.Notify.NewPoller(app.logger, app.cfg.PollInterval)
}

// Package app wires the session, API client, façade, and access gate into
// the host shell's single entry point.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hongminglow/hotel-admin/internal/apiclient"
	"github.com/hongminglow/hotel-admin/internal/config"
	"github.com/hongminglow/hotel-admin/internal/gate"
	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
	"github.com/hongminglow/hotel-admin/internal/services"
	"github.com/hongminglow/hotel-admin/internal/session"
)

// Navigator performs navigation on behalf of the core. The core only ever
// asks; the host decides what navigating means.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, path string)

func (f NavigatorFunc) Navigate(ctx context.Context, path string) { f(ctx, path) }

// App is the assembled client core.
type App struct {
	Logger   *slog.Logger
	Sessions *session.Manager
	Client   *apiclient.Client
	Services *services.Services
	Routes   *gate.Table

	nav     Navigator
	expired atomic.Int32
	closers []func() error
}

// Options carries the host-provided pieces of New.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Store     session.Store
	Navigator Navigator
	Logger    *slog.Logger
	// ClientOptions are applied after the defaults New installs.
	ClientOptions []apiclient.Option
}

// New assembles an App around opts.Store.
func New(opts Options) (*App, error) {
	if opts.Store == nil {
		return nil, errors.New("app: a token store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	nav := opts.Navigator
	if nav == nil {
		nav = NavigatorFunc(func(context.Context, string) {})
	}

	a := &App{
		Logger:   logger,
		Sessions: session.NewManager(opts.Store, logger.With("component", "session")),
		Routes:   gate.DefaultTable(),
		nav:      nav,
	}

	clientOpts := []apiclient.Option{
		apiclient.WithLogger(logger.With("component", "apiclient")),
		apiclient.WithTokenSource(a.Sessions),
		apiclient.OnSessionExpired(a.sessionExpired),
	}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, apiclient.WithTimeout(opts.Timeout))
	}
	clientOpts = append(clientOpts, opts.ClientOptions...)
	client, err := apiclient.New(opts.BaseURL, clientOpts...)
	if err != nil {
		return nil, err
	}
	a.Client = client
	a.Services = services.New(client)
	return a, nil
}

// FromConfig opens the configured token store and assembles an App.
func FromConfig(ctx context.Context, cfg config.Config, nav Navigator, logger *slog.Logger) (*App, error) {
	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a, err := New(Options{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.HTTPTimeout,
		Store:     store,
		Navigator: nav,
		Logger:    logger,
	})
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	a.closers = append(a.closers, closeStore)
	return a, nil
}

// OpenStore builds the token store selected by cfg.TokenStore.
func OpenStore(ctx context.Context, cfg config.Config) (session.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.TokenStore {
	case config.StoreMemory:
		return session.NewMemoryStore(), noop, nil
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("cannot connect to Redis at %s: %w", cfg.RedisAddr, err)
		}
		return session.NewRedisStore(rdb, cfg.RedisPrefix, cfg.TokenTTL), rdb.Close, nil
	default:
		return session.NewFileStore(cfg.TokenFile), noop, nil
	}
}

// Close releases the token store.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Restore resolves the session from the persisted token. Transport failures
// leave the session unauthenticated but keep the token for the next attempt.
func (a *App) Restore(ctx context.Context) error {
	return a.Sessions.Restore(ctx, a.Services.Auth.Me)
}

// Login authenticates, starts the session, and returns the user with their landing path.
func (a *App) Login(ctx context.Context, req dto.LoginRequest) (models.User, string, error) {
	if err := req.Validate(); err != nil {
		return models.User{}, "", err
	}
	resp, err := a.Services.Auth.Login(ctx, req)
	if err != nil {
		return models.User{}, "", err
	}
	if err := a.Sessions.Begin(ctx, resp.Token, resp.User); err != nil {
		return models.User{}, "", err
	}
	a.expired.Store(0)
	return resp.User, gate.HomeFor(resp.User.Role), nil
}

// Register creates an account; it does not sign the user in.
func (a *App) Register(ctx context.Context, req dto.RegisterRequest) (models.User, error) {
	if err := req.Validate(); err != nil {
		return models.User{}, err
	}
	return a.Services.Auth.Register(ctx, req)
}

// Logout ends the session and navigates to the login entry point.
func (a *App) Logout(ctx context.Context) error {
	if err := a.Sessions.End(ctx); err != nil {
		return err
	}
	a.nav.Navigate(ctx, gate.LoginPath)
	return nil
}

// Enter runs the access gate for path and asks the navigator to follow any redirect.
func (a *App) Enter(ctx context.Context, path string) gate.Decision {
	d := a.Routes.Check(path, a.Sessions.View())
	if d.Redirect != "" {
		a.nav.Navigate(ctx, d.Redirect)
	}
	return d
}

// Expirations returns how many times the API has rejected the session credential.
func (a *App) Expirations() int {
	return int(a.expired.Load())
}

func (a *App) sessionExpired(ctx context.Context, _ *apiclient.Error) {
	a.expired.Add(1)
	a.nav.Navigate(ctx, gate.LoginPath)
}

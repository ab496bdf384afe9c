package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hongminglow/hotel-admin/internal/auth"
	"github.com/hongminglow/hotel-admin/internal/models"
)

// ErrEmptyToken is returned when a session is started without a credential.
var ErrEmptyToken = errors.New("session token is empty")

// Session is the current identity and its credential. A nil User with a
// non-empty Token is possible while the identity is being fetched; the
// reverse never is.
type Session struct {
	Token string
	User  *models.User
}

// View is the read-only projection of the session that the access gate consumes.
type View struct {
	Resolved bool
	User     *models.User
}

// Authenticated reports whether a user identity is attached to the session.
func (v View) Authenticated() bool {
	return v.Resolved && v.User != nil
}

// Role returns the session role, or "" when unauthenticated.
func (v View) Role() models.Role {
	if v.User == nil {
		return ""
	}
	return v.User.Role
}

// UserLoader fetches the identity belonging to the persisted token, usually via GET /auth/me.
type UserLoader func(ctx context.Context) (models.User, error)

// Manager owns the persisted token and the in-memory session derived from it.
type Manager struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	resolved bool
	current  Session
	// gen advances on every login, logout, and invalidation so a slow
	// Restore cannot resurrect a session torn down while it was in flight.
	gen uint64
}

// NewManager wraps store. A nil logger discards log output.
func NewManager(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{store: store, logger: logger, now: time.Now}
}

// Restore resolves the session from the persisted token at startup. A Begin,
// End, or Invalidate that lands while Restore runs wins: Restore then only
// marks the session resolved and leaves it alone.
func (m *Manager) Restore(ctx context.Context, load UserLoader) error {
	m.mu.RLock()
	gen := m.gen
	m.mu.RUnlock()

	token, err := m.store.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		m.resolveAt(gen, Session{})
		return nil
	}
	if err != nil {
		m.resolveAt(gen, Session{})
		return fmt.Errorf("restore session: %w", err)
	}

	if auth.Expired(token, m.now()) {
		if !m.sameGen(gen) {
			m.markResolved()
			return nil
		}
		m.logger.InfoContext(ctx, "persisted token expired; discarding")
		if err := m.Invalidate(ctx); err != nil {
			return err
		}
		m.markResolved()
		return nil
	}

	m.mu.Lock()
	if m.gen != gen {
		m.resolved = true
		m.mu.Unlock()
		m.logger.DebugContext(ctx, "session changed before restore; keeping newer session")
		return nil
	}
	m.current = Session{Token: token}
	m.mu.Unlock()

	user, err := load(ctx)
	if err != nil {
		m.markResolved()
		return fmt.Errorf("restore session: load user: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolved = true
	if m.gen != gen {
		m.logger.DebugContext(ctx, "session changed during restore; dropping fetched identity")
		return nil
	}
	m.current.User = &user
	return nil
}

// Begin starts a session after a successful login, replacing any previous one.
func (m *Manager) Begin(ctx context.Context, token string, user models.User) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := m.store.Set(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	m.mu.Lock()
	m.gen++
	m.resolved = true
	m.current = Session{Token: token, User: &user}
	m.mu.Unlock()
	m.logger.InfoContext(ctx, "session started", "user_id", user.ID, "role", user.Role)
	return nil
}

// End logs out: the persisted token and in-memory session are both cleared.
func (m *Manager) End(ctx context.Context) error {
	err := m.teardown(ctx)
	m.logger.InfoContext(ctx, "session ended")
	return err
}

// Invalidate tears the session down after the API rejected the credential.
func (m *Manager) Invalidate(ctx context.Context) error {
	err := m.teardown(ctx)
	m.logger.InfoContext(ctx, "session invalidated")
	return err
}

// Token returns the persisted bearer token, or "" when none is stored.
func (m *Manager) Token(ctx context.Context) (string, error) {
	token, err := m.store.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}

// Current returns a copy of the in-memory session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := Session{Token: m.current.Token}
	if m.current.User != nil {
		u := *m.current.User
		out.User = &u
	}
	return out
}

// View returns the derived, read-only state for access decisions.
func (m *Manager) View() View {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v := View{Resolved: m.resolved}
	if m.current.Token != "" && m.current.User != nil {
		u := *m.current.User
		v.User = &u
	}
	return v
}

func (m *Manager) teardown(ctx context.Context) error {
	m.mu.Lock()
	m.gen++
	m.current = Session{}
	m.mu.Unlock()
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// resolveAt installs s unless the session moved past generation gen.
func (m *Manager) resolveAt(gen uint64, s Session) {
	m.mu.Lock()
	m.resolved = true
	if m.gen == gen {
		m.current = s
	}
	m.mu.Unlock()
}

func (m *Manager) sameGen(gen uint64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen == gen
}

func (m *Manager) markResolved() {
	m.mu.Lock()
	m.resolved = true
	m.mu.Unlock()
}

// Package session owns the client-side login state: the bearer token and a
// cached identity record, both persisted through a Store.
//
// A Manager is created once at startup and passed explicitly to the guards,
// the HTTP transport and the account service. It reads through the store on
// every call, so two processes sharing the same session file observe each
// other's logins and logouts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mlbahja/blogger/pkg/jwtx"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Identity is the user record cached next to the token.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

type Manager struct {
	store  Store
	now    func() time.Time
	logger *slog.Logger

	// mu serialises check-then-clear sequences between the foreground
	// command and the notification poller.
	mu sync.Mutex
}

type Option func(*Manager)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start persists a freshly issued token and identity.
func (m *Manager) Start(ctx context.Context, token string, id Identity) error {
	if err := m.SetToken(ctx, token); err != nil {
		return err
	}
	return m.SetIdentity(ctx, id)
}

func (m *Manager) SetToken(ctx context.Context, token string) error {
	if err := m.store.Set(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("session: store token: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when there is none. Storage
// failures are logged and treated as an absent token.
func (m *Manager) Token(ctx context.Context) string {
	tok, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.Warn("session: read token failed", "error", err)
		}
		return ""
	}
	return tok
}

func (m *Manager) ClearToken(ctx context.Context) error {
	return m.store.Delete(ctx, KeyToken)
}

func (m *Manager) SetIdentity(ctx context.Context, id Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("session: encode identity: %w", err)
	}
	if err := m.store.Set(ctx, KeyIdentity, string(raw)); err != nil {
		return fmt.Errorf("session: store identity: %w", err)
	}
	return nil
}

// Identity returns the cached identity, or nil when none is stored.
func (m *Manager) Identity(ctx context.Context) (*Identity, error) {
	raw, err := m.store.Get(ctx, KeyIdentity)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: read identity: %w", err)
	}

	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return nil, fmt.Errorf("session: decode identity: %w", err)
	}
	return &id, nil
}

func (m *Manager) ClearIdentity(ctx context.Context) error {
	return m.store.Delete(ctx, KeyIdentity)
}

// Clear removes both the token and the identity.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, KeyToken, KeyIdentity); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// IsValid reports whether a token is stored and its exp claim lies in the
// future. Any other outcome (no token, undecodable payload, missing or
// past exp) clears the whole session before returning false.
//
// The claim is read without verifying the signature.
func (m *Manager) IsValid(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	tok := m.Token(ctx)
	if tok == "" {
		return false
	}

	if err := jwtx.CheckExpiry(tok, m.now()); err != nil {
		m.logger.Debug("session invalid, clearing", "reason", err)
		if cerr := m.Clear(ctx); cerr != nil {
			m.logger.Warn("session: clear after invalid token failed", "error", cerr)
		}
		return false
	}
	return true
}

// Expiry returns the exp claim of the stored token without side effects.
func (m *Manager) Expiry(ctx context.Context) (time.Time, bool) {
	tok := m.Token(ctx)
	if tok == "" {
		return time.Time{}, false
	}
	exp, err := jwtx.ExpiresAt(tok)
	if err != nil {
		return time.Time{}, false
	}
	return exp, true
}

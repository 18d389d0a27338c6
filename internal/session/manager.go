package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/travelia/travelia-backend/internal/model"
)

// State describes where the manager is in its authentication lifecycle.
type State int

const (
	// StateUnauthenticated means no valid session is held.
	StateUnauthenticated State = iota
	// StateRestoring means stored credentials were loaded and are being
	// verified against the server.
	StateRestoring
	// StateVerified means the server confirmed the session.
	StateVerified
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateVerified:
		return "verified"
	default:
		return "unauthenticated"
	}
}

// AuthAPI is the slice of the API client the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*model.LoginResponse, error)
	Verify(ctx context.Context) (*model.Admin, error)
	Logout(ctx context.Context) error
	SetToken(token string)
}

// Manager owns the session lifecycle: restoring persisted credentials
// on startup, logging in and out, and exposing the current admin.
type Manager struct {
	api   AuthAPI
	store *Store
	log   zerolog.Logger

	mu    sync.RWMutex
	state State
	admin *model.Admin
}

// NewManager creates a manager with no active session.
func NewManager(api AuthAPI, store *Store, log zerolog.Logger) *Manager {
	return &Manager{
		api:   api,
		store: store,
		log:   log.With().Str("component", "session").Logger(),
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Admin returns the authenticated admin, or nil when unauthenticated.
func (m *Manager) Admin() *model.Admin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.admin
}

// Restore loads persisted credentials and verifies them with the
// server. The stored admin is exposed optimistically while the check
// runs; stale or revoked credentials are cleared. It returns true when
// a session was restored.
func (m *Manager) Restore(ctx context.Context) bool {
	creds, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoCredentials) {
			m.log.Warn().Err(err).Msg("Failed to load stored credentials")
		}
		m.setState(StateUnauthenticated, nil)
		return false
	}

	m.api.SetToken(creds.Token)
	m.setState(StateRestoring, &creds.Admin)

	admin, err := m.api.Verify(ctx)
	if err != nil {
		m.log.Info().Err(err).Msg("Stored session rejected, clearing credentials")
		m.api.SetToken("")
		if clearErr := m.store.Clear(); clearErr != nil {
			m.log.Warn().Err(clearErr).Msg("Failed to clear credentials")
		}
		m.setState(StateUnauthenticated, nil)
		return false
	}

	// Persist the fresh profile in case it changed server-side.
	if err := m.store.Save(&Credentials{Token: creds.Token, Admin: *admin}); err != nil {
		m.log.Warn().Err(err).Msg("Failed to refresh stored credentials")
	}
	m.setState(StateVerified, admin)
	return true
}

// Login authenticates with the server and persists the session.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	result, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.setState(StateUnauthenticated, nil)
		return err
	}

	if err := m.store.Save(&Credentials{Token: result.Token, Admin: result.Admin}); err != nil {
		m.log.Warn().Err(err).Msg("Failed to persist credentials")
	}
	m.setState(StateVerified, &result.Admin)
	return nil
}

// Logout clears local state unconditionally and makes a best-effort
// attempt to revoke the session server-side.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.log.Debug().Err(err).Msg("Server-side logout failed")
	}
	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("Failed to clear credentials")
	}
	m.setState(StateUnauthenticated, nil)
}

func (m *Manager) setState(state State, admin *model.Admin) {
	m.mu.Lock()
	m.state = state
	m.admin = admin
	m.mu.Unlock()
}

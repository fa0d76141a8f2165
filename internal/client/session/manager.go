// Package session holds the authoritative record of who the current user is
// and the credential used to speak to the backend. It hydrates from the
// store at startup, drives login/register/logout, and broadcasts every
// transition to subscribers.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/agrivision/agrivision/internal/client/api"
	"github.com/agrivision/agrivision/internal/client/models"
	"github.com/agrivision/agrivision/internal/client/store"
	"github.com/agrivision/agrivision/internal/common"
	"github.com/agrivision/agrivision/internal/logging"
)

// Snapshot is an immutable view of the session at one point in time.
//
// Invariant: IsAuthenticated implies Token != "" and User != nil. While
// IsLoading is true the session is still hydrating and no protected view
// may run.
type Snapshot struct {
	User            *models.Profile
	Token           string
	IsAuthenticated bool
	IsLoading       bool
}

// RegisterRequest is the account-creation payload.
type RegisterRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string         `json:"access_token"`
	User        models.Profile `json:"user"`
}

// Manager owns the session state machine. It is the only component allowed
// to mutate the store's session keys.
type Manager struct {
	api   *api.Client
	store store.Store
	log   logging.Logger

	mu      sync.RWMutex
	snap    Snapshot
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewManager wires the manager into the HTTP facade (token source and
// auth-expiry hook) and into the store (reacting to an out-of-band deletion
// of the token, e.g. by another command holding the same database).
func NewManager(client *api.Client, st store.Store, log logging.Logger) *Manager {
	m := &Manager{
		api:   client,
		store: st,
		log:   log,
		snap:  Snapshot{IsLoading: true},
		subs:  make(map[int]func(Snapshot)),
	}
	client.SetTokenSource(m.Token)
	client.SetAuthExpiredHook(m.invalidate)
	st.Subscribe(m.onStoreChange)
	return m
}

// Snapshot returns the current session view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// Token returns the bearer token, or "" when anonymous.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.Token
}

// HasPermission reports whether the current user carries the named
// permission; false when anonymous.
func (m *Manager) HasPermission(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.User.HasPermission(name)
}

// Subscribe registers fn to receive every subsequent session transition.
// The returned function unsubscribes.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Manager) notifyAll() {
	m.mu.RLock()
	snap := m.snap
	handlers := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		handlers = append(handlers, fn)
	}
	m.mu.RUnlock()

	for _, fn := range handlers {
		fn(snap)
	}
}

// Hydrate resolves the initial Hydrating state into Authenticated or
// Anonymous. The store must hold the token, the "true" flag and a parseable
// profile, and the identity endpoint must accept the token; anything less,
// including a network failure at startup, clears the store and lands in
// Anonymous. Hydrate is idempotent.
func (m *Manager) Hydrate(ctx context.Context) {
	token, err := m.store.Get(ctx, store.KeyAuthToken)
	if err != nil || token == "" {
		m.resolveAnonymous(ctx, "no persisted token")
		return
	}

	flag, err := m.store.Get(ctx, store.KeyIsAuthenticated)
	if err != nil || flag != "true" {
		m.resolveAnonymous(ctx, "persisted session incomplete")
		return
	}

	profile, err := store.GetJSON[models.Profile](ctx, m.store, store.KeyUserProfile)
	if err != nil || profile == nil || profile.Email == "" {
		m.resolveAnonymous(ctx, "persisted profile missing or corrupt")
		return
	}

	// Make the candidate token visible to the facade for the identity check.
	m.mu.Lock()
	m.snap = Snapshot{Token: token, IsLoading: true}
	m.mu.Unlock()

	if _, err := m.api.Get(ctx, "/auth/me"); err != nil {
		m.resolveAnonymous(ctx, "identity check failed")
		return
	}

	m.mu.Lock()
	m.snap = Snapshot{User: profile, Token: token, IsAuthenticated: true}
	m.mu.Unlock()

	m.log.Info(ctx, "session hydrated", "email", profile.Email)
	m.notifyAll()
}

// resolveAnonymous finishes hydration (or any invalidation path) in the
// Anonymous state with the store's session keys cleared.
func (m *Manager) resolveAnonymous(ctx context.Context, reason string) {
	m.mu.Lock()
	m.snap = Snapshot{}
	m.mu.Unlock()

	if err := m.store.ClearSession(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear persisted session", "error", err)
	}
	m.log.Info(ctx, "session anonymous", "reason", reason)
	m.notifyAll()
}

// Login authenticates with the backend and, on success, persists the
// session and transitions to Authenticated. On failure the session state is
// left untouched.
func (m *Manager) Login(ctx context.Context, email, password string, rememberMe bool) error {
	raw, err := m.api.Post(ctx, "/auth/login", credentials{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return m.establish(ctx, raw, email, rememberMe)
}

// Register creates an account; the success contract matches Login.
func (m *Manager) Register(ctx context.Context, req RegisterRequest) error {
	raw, err := m.api.Post(ctx, "/auth/register", req)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return m.establish(ctx, raw, req.Email, false)
}

func (m *Manager) establish(ctx context.Context, raw json.RawMessage, email string, rememberMe bool) error {
	var res authResponse
	if err := json.Unmarshal(raw, &res); err != nil || res.AccessToken == "" {
		return fmt.Errorf("malformed auth response from server")
	}

	user := res.User
	if user.Email == "" {
		user.Email = email
	}

	m.persist(ctx, res.AccessToken, &user, rememberMe)

	m.mu.Lock()
	m.snap = Snapshot{User: &user, Token: res.AccessToken, IsAuthenticated: true}
	m.mu.Unlock()

	m.log.Info(ctx, "signed in", "email", user.Email)
	m.notifyAll()
	return nil
}

// persist writes the durable projection of the session. Storage failures are
// logged but do not block the in-memory session for the current run.
func (m *Manager) persist(ctx context.Context, token string, user *models.Profile, rememberMe bool) {
	profileJSON, err := json.Marshal(user)
	if err != nil {
		m.log.Warn(ctx, "failed to encode profile", "error", err)
		return
	}

	writes := []struct {
		key   store.Key
		value string
	}{
		{store.KeyAuthToken, token},
		{store.KeyIsAuthenticated, "true"},
		{store.KeyUserProfile, string(profileJSON)},
		{store.KeyUserEmail, user.Email},
	}
	for _, w := range writes {
		if err := m.store.Set(ctx, w.key, w.value); err != nil {
			m.log.Warn(ctx, "failed to persist session key", "key", w.key, "error", err)
		}
	}

	if rememberMe {
		err = m.store.Set(ctx, store.KeyRememberMe, "true")
	} else {
		err = m.store.Delete(ctx, store.KeyRememberMe)
	}
	if err != nil {
		m.log.Warn(ctx, "failed to persist rememberMe", "error", err)
	}
}

// Logout unconditionally transitions to Anonymous and clears the persisted
// session. rememberMe survives.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.snap = Snapshot{}
	m.mu.Unlock()

	if err := m.store.ClearSession(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear persisted session", "error", err)
	}
	m.log.Info(ctx, "signed out")
	m.notifyAll()
	return nil
}

// invalidate is the facade's 401 hook: the server rejected the held token.
// During hydration the transition belongs to Hydrate, so this is a no-op.
func (m *Manager) invalidate(ctx context.Context) {
	m.mu.Lock()
	if m.snap.IsLoading || !m.snap.IsAuthenticated {
		m.mu.Unlock()
		return
	}
	m.snap = Snapshot{}
	m.mu.Unlock()

	if err := m.store.ClearSession(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear persisted session", "error", err)
	}
	m.log.Warn(ctx, "session expired, signed out")
	m.notifyAll()
}

// onStoreChange reacts to the token disappearing underneath us, which
// happens when another process sharing the database logs out. Our own
// mutations are harmless here: state is updated before the store, so the
// guard in invalidate sees them as no-ops.
func (m *Manager) onStoreChange(key store.Key, newValue string) {
	if key == store.KeyAuthToken && newValue == "" {
		m.invalidate(context.Background())
	}
}

// AuthenticatedRequest issues a raw request for callers needing custom
// response handling. It refuses outright when no token is held.
func (m *Manager) AuthenticatedRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	if m.Token() == "" {
		return nil, common.ErrAuthRequired
	}
	return m.api.Do(ctx, method, path, body)
}

// Package service holds the use-case layer: the auth session manager and the
// gateway's account/reading services.
package service

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ppk205/comicreader/internal/core/domain"
	"github.com/ppk205/comicreader/internal/core/ports"
	"github.com/ppk205/comicreader/pkg/comicapi"
)

// SessionState is the snapshot visible to consumers. The invariant
// Authenticated == (User != nil) holds at every point of the lifecycle.
type SessionState struct {
	User          *domain.User
	Authenticated bool
	Loading       bool
	Permissions   []domain.Permission
}

// SessionConfig controls bootstrap behavior.
type SessionConfig struct {
	// AutoLogin enables the development convenience of logging in with the
	// default credentials when no token is persisted. Leave false in
	// production.
	AutoLogin       bool
	DefaultUsername string
	DefaultPassword string
}

type sessionActionKind int

const (
	actionLoginStart sessionActionKind = iota
	actionLoginSuccess
	actionLoginFailure
	actionLogout
	actionRefreshUser
)

type sessionAction struct {
	kind sessionActionKind
	user *domain.User
}

// reduce is the pure state transition. Success and refresh both derive the
// permission set from the user's role.
func reduce(s SessionState, a sessionAction) SessionState {
	switch a.kind {
	case actionLoginStart:
		s.Loading = true
	case actionLoginSuccess:
		s.User = a.user
		s.Authenticated = true
		s.Loading = false
		s.Permissions = a.user.Role.Permissions
	case actionLoginFailure:
		s.User = nil
		s.Authenticated = false
		s.Loading = false
		s.Permissions = nil
	case actionLogout:
		s = SessionState{}
	case actionRefreshUser:
		s.User = a.user
		s.Authenticated = true
		s.Permissions = a.user.Role.Permissions
	}
	return s
}

// SessionManager holds the single piece of authentication state visible to
// consumers and keeps it synchronized with the persisted token.
type SessionManager struct {
	api    ports.AuthAPI
	tokens ports.TokenStore
	cfg    SessionConfig
	log    zerolog.Logger

	mu      sync.RWMutex
	state   SessionState
	subs    map[int]chan SessionState
	nextSub int
}

func NewSessionManager(api ports.AuthAPI, tokens ports.TokenStore, cfg SessionConfig, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		api:    api,
		tokens: tokens,
		cfg:    cfg,
		log:    log,
		subs:   make(map[int]chan SessionState),
	}
}

// State returns a snapshot of the current session.
func (m *SessionManager) State() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Subscribe returns a channel receiving state snapshots after every
// transition, plus a cancel func. Slow subscribers drop updates rather than
// blocking dispatch.
func (m *SessionManager) Subscribe() (<-chan SessionState, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	ch := make(chan SessionState, 8)
	m.subs[id] = ch
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}
}

func (m *SessionManager) dispatch(a sessionAction) {
	m.mu.Lock()
	m.state = reduce(m.state, a)
	snapshot := m.state
	subs := make([]chan SessionState, 0, len(m.subs))
	for _, ch := range m.subs {
		subs = append(subs, ch)
	}
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// Login authenticates, persists the returned token, and transitions to
// LoggedIn. On any failure the state returns to LoggedOut and the error is
// surfaced so the caller can present it.
func (m *SessionManager) Login(ctx context.Context, creds ports.Credentials) error {
	m.dispatch(sessionAction{kind: actionLoginStart})

	result, err := m.api.Login(ctx, creds)
	if err != nil {
		m.dispatch(sessionAction{kind: actionLoginFailure})
		return err
	}
	if err := m.tokens.Save(ctx, result.Token); err != nil {
		m.dispatch(sessionAction{kind: actionLoginFailure})
		return err
	}

	m.dispatch(sessionAction{kind: actionLoginSuccess, user: result.User})
	return nil
}

// Logout calls the backend best-effort, then clears the persisted token
// unconditionally and transitions to LoggedOut. A failed network call is
// logged, never surfaced.
func (m *SessionManager) Logout(ctx context.Context) error {
	if err := m.api.Logout(ctx); err != nil {
		m.log.Warn().Err(err).Msg("logout request failed")
	}
	err := m.tokens.Clear(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("clearing persisted token failed")
	}
	m.dispatch(sessionAction{kind: actionLogout})
	return err
}

// RefreshUser replaces the user in place from GET /auth/me. Without a
// persisted token it is a no-op. A 401 means the token is invalid or expired
// and triggers a full logout; other failures are surfaced without destroying
// the session.
func (m *SessionManager) RefreshUser(ctx context.Context) error {
	token, err := m.tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		if comicapi.IsStatus(err, http.StatusUnauthorized) {
			m.log.Warn().Msg("session token rejected, logging out")
			_ = m.Logout(ctx)
			return domain.ErrSessionExpired
		}
		return err
	}

	m.dispatch(sessionAction{kind: actionRefreshUser, user: user})
	return nil
}

// Bootstrap runs once at application start: an existing token is refreshed
// into a live session; otherwise, when AutoLogin is enabled, the default
// credentials are tried and failure is swallowed with a warning.
func (m *SessionManager) Bootstrap(ctx context.Context) error {
	token, err := m.tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		return m.RefreshUser(ctx)
	}

	if m.cfg.AutoLogin && m.cfg.DefaultUsername != "" && m.cfg.DefaultPassword != "" {
		creds := ports.Credentials{Username: m.cfg.DefaultUsername, Password: m.cfg.DefaultPassword}
		if err := m.Login(ctx, creds); err != nil {
			m.log.Warn().Err(err).Msg("automatic login failed, manual sign-in required")
		}
	}
	return nil
}

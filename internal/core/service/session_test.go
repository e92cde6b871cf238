package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ppk205/comicreader/internal/core/domain"
	"github.com/ppk205/comicreader/internal/core/ports"
	"github.com/ppk205/comicreader/internal/infrastructure/storage"
	"github.com/ppk205/comicreader/pkg/comicapi"
)

type stubAuthAPI struct {
	loginFn       func(ctx context.Context, creds ports.Credentials) (*ports.AuthResult, error)
	logoutFn      func(ctx context.Context) error
	currentUserFn func(ctx context.Context) (*domain.User, error)
}

func (s *stubAuthAPI) Login(ctx context.Context, creds ports.Credentials) (*ports.AuthResult, error) {
	return s.loginFn(ctx, creds)
}

func (s *stubAuthAPI) Logout(ctx context.Context) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx)
}

func (s *stubAuthAPI) CurrentUser(ctx context.Context) (*domain.User, error) {
	return s.currentUserFn(ctx)
}

func adminUser() *domain.User {
	return &domain.User{
		ID:       "u1",
		Username: "admin",
		Role: domain.Role{
			Name: domain.RoleAdmin,
			Permissions: []domain.Permission{
				{ID: "p1", Name: "manage users", Resource: "user", Action: "manage"},
				{ID: "p2", Name: "manage manga", Resource: "manga", Action: "manage"},
			},
		},
	}
}

func checkInvariant(t *testing.T, s SessionState) {
	t.Helper()
	if s.Authenticated != (s.User != nil) {
		t.Fatalf("invariant broken: authenticated=%v user=%v", s.Authenticated, s.User)
	}
}

func TestLogin_Success(t *testing.T) {
	api := &stubAuthAPI{
		loginFn: func(_ context.Context, creds ports.Credentials) (*ports.AuthResult, error) {
			if creds.Username != "admin" || creds.Password != "pw" {
				t.Fatalf("unexpected credentials: %+v", creds)
			}
			return &ports.AuthResult{Token: "tok-1", User: adminUser()}, nil
		},
	}
	tokens := storage.NewMemoryTokenStore()
	m := NewSessionManager(api, tokens, SessionConfig{}, zerolog.Nop())

	if err := m.Login(context.Background(), ports.Credentials{Username: "admin", Password: "pw"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	s := m.State()
	checkInvariant(t, s)
	if !s.Authenticated || s.User.Username != "admin" || s.Loading {
		t.Fatalf("unexpected state: %+v", s)
	}
	if len(s.Permissions) != 2 {
		t.Fatalf("expected permissions derived from role, got %v", s.Permissions)
	}
	if tok, _ := tokens.Token(context.Background()); tok != "tok-1" {
		t.Fatalf("expected token persisted, got %q", tok)
	}
}

func TestLogin_FailureReturnsToLoggedOut(t *testing.T) {
	wantErr := errors.New("backend down")
	api := &stubAuthAPI{
		loginFn: func(context.Context, ports.Credentials) (*ports.AuthResult, error) {
			return nil, wantErr
		},
	}
	tokens := storage.NewMemoryTokenStore()
	m := NewSessionManager(api, tokens, SessionConfig{}, zerolog.Nop())

	err := m.Login(context.Background(), ports.Credentials{Username: "admin", Password: "pw"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected login error surfaced, got %v", err)
	}

	s := m.State()
	checkInvariant(t, s)
	if s.Authenticated || s.User != nil || s.Loading {
		t.Fatalf("expected logged-out state, got %+v", s)
	}
	if tok, _ := tokens.Token(context.Background()); tok != "" {
		t.Fatalf("expected no persisted token, got %q", tok)
	}
}

func TestLogin_SetsLoadingDuringRequest(t *testing.T) {
	tokens := storage.NewMemoryTokenStore()
	var m *SessionManager
	api := &stubAuthAPI{
		loginFn: func(context.Context, ports.Credentials) (*ports.AuthResult, error) {
			s := m.State()
			checkInvariant(t, s)
			if !s.Loading {
				t.Fatalf("expected loading while request in flight")
			}
			return &ports.AuthResult{Token: "t", User: adminUser()}, nil
		},
	}
	m = NewSessionManager(api, tokens, SessionConfig{}, zerolog.Nop())
	if err := m.Login(context.Background(), ports.Credentials{Username: "admin", Password: "pw"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
}

func TestLogout_ClearsTokenEvenWhenBackendFails(t *testing.T) {
	api := &stubAuthAPI{
		loginFn: func(context.Context, ports.Credentials) (*ports.AuthResult, error) {
			return &ports.AuthResult{Token: "tok-1", User: adminUser()}, nil
		},
		logoutFn: func(context.Context) error {
			return errors.New("network unreachable")
		},
	}
	tokens := storage.NewMemoryTokenStore()
	m := NewSessionManager(api, tokens, SessionConfig{}, zerolog.Nop())

	if err := m.Login(context.Background(), ports.Credentials{Username: "admin", Password: "pw"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	s := m.State()
	checkInvariant(t, s)
	if s.Authenticated || s.User != nil || len(s.Permissions) != 0 {
		t.Fatalf("expected cleared state, got %+v", s)
	}
	if tok, _ := tokens.Token(context.Background()); tok != "" {
		t.Fatalf("expected token cleared, got %q", tok)
	}
}

func TestRefreshUser_NoTokenIsNoop(t *testing.T) {
	api := &stubAuthAPI{
		currentUserFn: func(context.Context) (*domain.User, error) {
			t.Fatalf("CurrentUser must not be called without a token")
			return nil, nil
		},
	}
	m := NewSessionManager(api, storage.NewMemoryTokenStore(), SessionConfig{}, zerolog.Nop())

	if err := m.RefreshUser(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	checkInvariant(t, m.State())
}

func TestRefreshUser_UnauthorizedLogsOut(t *testing.T) {
	tokens := storage.NewMemoryTokenStore()
	_ = tokens.Save(context.Background(), "stale-token")
	api := &stubAuthAPI{
		currentUserFn: func(context.Context) (*domain.User, error) {
			return nil, &comicapi.APIError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}
		},
	}
	m := NewSessionManager(api, tokens, SessionConfig{}, zerolog.Nop())

	err := m.RefreshUser(context.Background())
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	s := m.State()
	checkInvariant(t, s)
	if s.Authenticated || s.User != nil {
		t.Fatalf("expected logged-out state, got %+v", s)
	}
	if tok, _ := tokens.Token(context.Background()); tok != "" {
		t.Fatalf("expected token cleared, got %q", tok)
	}
}

func TestRefreshUser_TransientErrorKeepsSession(t *testing.T) {
	tokens := storage.NewMemoryTokenStore()
	api := &stubAuthAPI{
		loginFn: func(context.Context, ports.Credentials) (*ports.AuthResult, error) {
			return &ports.AuthResult{Token: "tok-1", User: adminUser()}, nil
		},
		currentUserFn: func(context.Context) (*domain.User, error) {
			return nil, &comicapi.APIError{StatusCode: http.StatusBadGateway, Message: "upstream down"}
		},
	}
	m := NewSessionManager(api, tokens, SessionConfig{}, zerolog.Nop())
	if err := m.Login(context.Background(), ports.Credentials{Username: "admin", Password: "pw"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := m.RefreshUser(context.Background()); err == nil {
		t.Fatalf("expected refresh error surfaced")
	}

	s := m.State()
	checkInvariant(t, s)
	if !s.Authenticated || s.User == nil {
		t.Fatalf("session must survive transient refresh failure, got %+v", s)
	}
	if tok, _ := tokens.Token(context.Background()); tok != "tok-1" {
		t.Fatalf("token must survive transient refresh failure, got %q", tok)
	}
}

func TestRefreshUser_UpdatesUserInPlace(t *testing.T) {
	tokens := storage.NewMemoryTokenStore()
	_ = tokens.Save(context.Background(), "tok-1")
	renamed := adminUser()
	renamed.Username = "renamed"
	api := &stubAuthAPI{
		currentUserFn: func(context.Context) (*domain.User, error) {
			return renamed, nil
		},
	}
	m := NewSessionManager(api, tokens, SessionConfig{}, zerolog.Nop())

	if err := m.RefreshUser(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	s := m.State()
	checkInvariant(t, s)
	if !s.Authenticated || s.User.Username != "renamed" {
		t.Fatalf("unexpected state after refresh: %+v", s)
	}
}

func TestBootstrap_RefreshesExistingToken(t *testing.T) {
	tokens := storage.NewMemoryTokenStore()
	_ = tokens.Save(context.Background(), "tok-1")
	api := &stubAuthAPI{
		loginFn: func(context.Context, ports.Credentials) (*ports.AuthResult, error) {
			t.Fatalf("Login must not be called when a token is persisted")
			return nil, nil
		},
		currentUserFn: func(context.Context) (*domain.User, error) {
			return adminUser(), nil
		},
	}
	m := NewSessionManager(api, tokens, SessionConfig{AutoLogin: true, DefaultUsername: "admin", DefaultPassword: "pw"}, zerolog.Nop())

	if err := m.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if s := m.State(); !s.Authenticated {
		t.Fatalf("expected live session after bootstrap, got %+v", s)
	}
}

func TestBootstrap_AutoLoginFailureSwallowed(t *testing.T) {
	api := &stubAuthAPI{
		loginFn: func(context.Context, ports.Credentials) (*ports.AuthResult, error) {
			return nil, errors.New("backend down")
		},
	}
	m := NewSessionManager(api, storage.NewMemoryTokenStore(), SessionConfig{AutoLogin: true, DefaultUsername: "admin", DefaultPassword: "pw"}, zerolog.Nop())

	if err := m.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap must swallow auto-login failure, got %v", err)
	}
	s := m.State()
	checkInvariant(t, s)
	if s.Authenticated {
		t.Fatalf("expected logged-out state, got %+v", s)
	}
}

func TestBootstrap_AutoLoginDisabledStaysLoggedOut(t *testing.T) {
	api := &stubAuthAPI{
		loginFn: func(context.Context, ports.Credentials) (*ports.AuthResult, error) {
			t.Fatalf("Login must not be called with auto-login disabled")
			return nil, nil
		},
	}
	m := NewSessionManager(api, storage.NewMemoryTokenStore(), SessionConfig{}, zerolog.Nop())

	if err := m.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if s := m.State(); s.Authenticated {
		t.Fatalf("expected logged-out state, got %+v", s)
	}
}

func TestSubscribe_ReceivesTransitions(t *testing.T) {
	api := &stubAuthAPI{
		loginFn: func(context.Context, ports.Credentials) (*ports.AuthResult, error) {
			return &ports.AuthResult{Token: "t", User: adminUser()}, nil
		},
	}
	m := NewSessionManager(api, storage.NewMemoryTokenStore(), SessionConfig{}, zerolog.Nop())
	ch, cancel := m.Subscribe()
	defer cancel()

	if err := m.Login(context.Background(), ports.Credentials{Username: "admin", Password: "pw"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	first := <-ch
	if !first.Loading {
		t.Fatalf("expected loading snapshot first, got %+v", first)
	}
	second := <-ch
	checkInvariant(t, second)
	if !second.Authenticated {
		t.Fatalf("expected authenticated snapshot, got %+v", second)
	}
}

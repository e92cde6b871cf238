package comicapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ppk205/comicreader/internal/core/domain"
	"github.com/ppk205/comicreader/internal/core/ports"
)

// ErrUnexpectedAuthResponse means a login/registration response carried
// neither a recognizable token nor a user payload.
var ErrUnexpectedAuthResponse = errors.New("unexpected authentication response from backend")

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against POST /auth/login. The backend expects the
// identifier in an "email" field, so a username credential is sent under that
// name too. The returned token is not persisted here; that is the session
// manager's job.
func (c *Client) Login(ctx context.Context, creds ports.Credentials) (*ports.AuthResult, error) {
	identifier := creds.Email
	if identifier == "" {
		identifier = creds.Username
	}
	body, err := jsonBody(loginRequest{Email: identifier, Password: creds.Password})
	if err != nil {
		return nil, err
	}
	data, _, err := c.do(ctx, http.MethodPost, "/auth/login", &RequestOptions{Body: body})
	if err != nil {
		return nil, err
	}
	return normalizeAuth(data, true)
}

// Register creates an account via POST /auth/register.
func (c *Client) Register(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
	body, err := jsonBody(registerRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	data, _, err := c.do(ctx, http.MethodPost, "/auth/register", &RequestOptions{Body: body})
	if err != nil {
		return nil, err
	}
	// Registration may or may not issue a token depending on backend config.
	return normalizeAuth(data, false)
}

// Logout calls POST /auth/logout.
func (c *Client) Logout(ctx context.Context) error {
	return c.Request(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// CurrentUser fetches the authenticated user from GET /auth/me.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.Request(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// normalizeAuth tolerates the three token spellings the backend has shipped
// (token, accessToken, access_token) and responses where the user object is
// the whole body rather than a "user" field.
func normalizeAuth(data []byte, requireToken bool) (*ports.AuthResult, error) {
	var payload struct {
		Token        string       `json:"token"`
		AccessToken  string       `json:"accessToken"`
		AccessSnake  string       `json:"access_token"`
		User         *domain.User `json:"user"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, ErrUnexpectedAuthResponse
	}

	token := payload.Token
	if token == "" {
		token = payload.AccessToken
	}
	if token == "" {
		token = payload.AccessSnake
	}

	user := payload.User
	if user == nil {
		var whole domain.User
		if err := json.Unmarshal(data, &whole); err == nil && whole.ID != "" {
			user = &whole
		}
	}

	if user == nil || (requireToken && token == "") {
		return nil, ErrUnexpectedAuthResponse
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ppk205/comicreader/internal/api/metrics"
	"github.com/ppk205/comicreader/internal/api/middleware"
	"github.com/ppk205/comicreader/internal/core/domain"
	"github.com/ppk205/comicreader/internal/core/ports"
)

// userCookie mirrors the public profile into a client-readable cookie so
// server-rendered pages can show identity without a round trip.
const userCookie = "user"

type AuthHandler struct {
	accounts ports.AccountService
	secret   string
	ttl      time.Duration
	secure   bool
}

func NewAuthHandler(accounts ports.AccountService, secret string, ttl time.Duration, secure bool) *AuthHandler {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &AuthHandler{accounts: accounts, secret: secret, ttl: ttl, secure: secure}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=32"`
	Password    string `json:"password" validate:"required,min=8"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName,omitempty"`
}

type sessionResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    *domain.Account `json:"user,omitempty"`
}

// Login authenticates against the gateway account store and sets the session cookie.
//
// @Summary      Gateway login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	account, err := h.accounts.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.SessionLoginsTotal.WithLabelValues("failure").Inc()
		if err == domain.ErrInvalidCredentials {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
		}
		return err
	}

	session, err := middleware.IssueSessionCookie(h.secret, h.ttl, account, h.secure)
	if err != nil {
		return err
	}
	c.SetCookie(session)
	h.setUserCookie(c, account)
	metrics.SessionLoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, sessionResponse{
		Success: true,
		Message: "Login successful",
		User:    account.PublicProfile(),
	})
}

// Logout clears the session cookie. There is no server-side session record to
// revoke; expiring the cookie is the whole operation.
//
// @Summary      Gateway logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(middleware.ClearSessionCookie(h.secure))
	c.SetCookie(&http.Cookie{Name: userCookie, Value: "", Path: "/", MaxAge: -1, Secure: h.secure})
	return c.JSON(http.StatusOK, sessionResponse{Success: true, Message: "Logged out successfully"})
}

// Register creates a gateway account.
//
// @Summary      Register a gateway account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	account, err := h.accounts.Register(c.Request().Context(), req.Username, req.Password, req.Email, req.DisplayName)
	if err != nil {
		if err == domain.ErrUserExists {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, sessionResponse{
		Success: true,
		Message: "Account created",
		User:    account.PublicProfile(),
	})
}

func (h *AuthHandler) setUserCookie(c echo.Context, account *domain.Account) {
	profile, err := json.Marshal(account.PublicProfile())
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     userCookie,
		Value:    url.QueryEscape(string(profile)),
		Path:     "/",
		MaxAge:   int(h.ttl / time.Second),
		HttpOnly: false,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

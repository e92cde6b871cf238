package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ppk205/comicreader/internal/core/domain"
	"github.com/ppk205/comicreader/internal/core/ports"
)

type ProfileHandler struct {
	accounts ports.AccountService
}

func NewProfileHandler(accounts ports.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// sessionAccountID extracts the account identity injected by the Session
// middleware. Its absence means the middleware did not run.
func sessionAccountID(c echo.Context) (string, error) {
	id, _ := c.Get("account_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session claims")
	}
	return id, nil
}

// Get returns the caller's own profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.Account
// @Failure      401  {object}  map[string]string
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	id, err := sessionAccountID(c)
	if err != nil {
		return err
	}
	account, err := h.accounts.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account.PublicProfile())
}

type profileUpdateRequest struct {
	DisplayName *string           `json:"displayName,omitempty"`
	Bio         *string           `json:"bio,omitempty" validate:"omitempty,max=500"`
	AvatarURL   *string           `json:"avatarUrl,omitempty"`
	SocialLinks map[string]string `json:"socialLinks,omitempty"`
	QuickNote   *domain.QuickNote `json:"quickNote,omitempty"`
}

// Update applies a partial profile edit.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      profileUpdateRequest  true  "Fields to change"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	id, err := sessionAccountID(c)
	if err != nil {
		return err
	}

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	account, err := h.accounts.UpdateProfile(c.Request().Context(), id, ports.ProfileUpdate{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		SocialLinks: req.SocialLinks,
		QuickNote:   req.QuickNote,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account.PublicProfile())
}

// Follow bumps the target account's follower count.
//
// @Summary      Follow a user
// @Tags         profile
// @Produce      json
// @Param        id   path      string  true  "Target account ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id}/follow [post]
func (h *ProfileHandler) Follow(c echo.Context) error {
	if _, err := sessionAccountID(c); err != nil {
		return err
	}
	if err := h.accounts.Follow(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unfollow decrements the target account's follower count.
//
// @Summary      Unfollow a user
// @Tags         profile
// @Produce      json
// @Param        id   path      string  true  "Target account ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id}/follow [delete]
func (h *ProfileHandler) Unfollow(c echo.Context) error {
	if _, err := sessionAccountID(c); err != nil {
		return err
	}
	if err := h.accounts.Unfollow(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package comicapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ppk205/comicreader/internal/core/domain"
)

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   string `json:"roleId"`
}

// UpdateUserRequest is the payload for PUT /users/:id.
type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	RoleID   string `json:"roleId,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Users lists accounts with server-side pagination.
func (c *Client) Users(ctx context.Context, page, limit int) ([]domain.User, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return getList[domain.User](c, ctx, fmt.Sprintf("/users?page=%d&limit=%d", page, limit))
}

// UserByID fetches one account.
func (c *Client) UserByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := c.Request(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser creates an account.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := c.Request(ctx, http.MethodPost, "/users", &RequestOptions{Body: body}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser updates an account. Profile edits go through the same endpoint.
func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*domain.User, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := c.Request(ctx, http.MethodPut, "/users/"+url.PathEscape(id), &RequestOptions{Body: body}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.Request(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

// Follow follows a user.
func (c *Client) Follow(ctx context.Context, userID string) error {
	return c.Request(ctx, http.MethodPost, "/follow/"+url.PathEscape(userID), nil, nil)
}

// Unfollow unfollows a user.
func (c *Client) Unfollow(ctx context.Context, userID string) error {
	return c.Request(ctx, http.MethodDelete, "/follow/"+url.PathEscape(userID), nil, nil)
}

// Followers lists the accounts following userID.
func (c *Client) Followers(ctx context.Context, userID string) ([]domain.User, error) {
	return getList[domain.User](c, ctx, "/follow/followers?userId="+url.QueryEscape(userID))
}

// Following lists the accounts userID follows.
func (c *Client) Following(ctx context.Context, userID string) ([]domain.User, error) {
	return getList[domain.User](c, ctx, "/follow/following?userId="+url.QueryEscape(userID))
}

// DashboardStats fetches the admin dashboard summary.
func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.Request(ctx, http.MethodGet, "/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RecentActivity fetches the dashboard activity feed.
func (c *Client) RecentActivity(ctx context.Context) ([]domain.ActivityLog, error) {
	return getList[domain.ActivityLog](c, ctx, "/dashboard/activity")
}

// ModerationReports lists open user reports.
func (c *Client) ModerationReports(ctx context.Context) ([]domain.ActivityLog, error) {
	return getList[domain.ActivityLog](c, ctx, "/moderation/reports")
}

// ModerationQueue lists content awaiting approval.
func (c *Client) ModerationQueue(ctx context.Context) ([]domain.Manga, error) {
	return getList[domain.Manga](c, ctx, "/moderation/approval")
}

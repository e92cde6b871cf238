package domain

import "time"

// QuickNote is a short-lived status message on a profile.
type QuickNote struct {
	Content   string    `json:"content"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Account is the gateway's own user record, authenticated via the session
// cookie. It is deliberately independent of the backend User identity: the
// two mechanisms are never reconciled.
type Account struct {
	ID             string            `json:"id"`
	Username       string            `json:"username"`
	PasswordHash   string            `json:"-"`
	Email          string            `json:"email"`
	DisplayName    string            `json:"displayName"`
	Role           string            `json:"role"`
	Bio            string            `json:"bio,omitempty"`
	SeriesCount    int               `json:"seriesCount"`
	FollowersCount int               `json:"followersCount"`
	ViewerCount    int               `json:"viewerCount"`
	AvatarURL      string            `json:"avatarUrl,omitempty"`
	SocialLinks    map[string]string `json:"socialLinks,omitempty"`
	QuickNote      *QuickNote        `json:"quickNote,omitempty"`
}

// PublicProfile strips fields that must not leave the gateway.
func (a *Account) PublicProfile() *Account {
	clone := *a
	clone.PasswordHash = ""
	return &clone
}

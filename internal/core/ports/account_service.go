package ports

import (
	"context"

	"github.com/ppk205/comicreader/internal/core/domain"
)

// ProfileUpdate carries the editable profile fields; nil means unchanged.
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
	SocialLinks map[string]string
	QuickNote   *domain.QuickNote
}

// AccountService defines the gateway's account use-cases.
type AccountService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)
	Register(ctx context.Context, username, password, email, displayName string) (*domain.Account, error)
	Profile(ctx context.Context, id string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.Account, error)
	Follow(ctx context.Context, targetID string) error
	Unfollow(ctx context.Context, targetID string) error
}

package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/ppk205/comicreader/internal/core/domain"
	"github.com/ppk205/comicreader/internal/core/ports"
)

// AccountService implements the gateway's own login, registration, and
// profile flows, backed by the account repository.
type AccountService struct {
	repo ports.AccountRepository
}

func NewAccountService(repo ports.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// Authenticate verifies a username/password pair. Unknown users and wrong
// passwords both map to ErrInvalidCredentials so callers cannot distinguish.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

// Register creates a gateway account with a bcrypt password hash.
func (s *AccountService) Register(ctx context.Context, username, password, email, displayName string) (*domain.Account, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if displayName == "" {
		displayName = username
	}
	return s.repo.Create(ctx, &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		DisplayName:  displayName,
		Role:         domain.RoleUser,
		SocialLinks:  map[string]string{},
	})
}

// Profile returns a single account.
func (s *AccountService) Profile(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile applies a partial edit and returns the stored account.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, update ports.ProfileUpdate) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.DisplayName != nil {
		account.DisplayName = *update.DisplayName
	}
	if update.Bio != nil {
		account.Bio = *update.Bio
	}
	if update.AvatarURL != nil {
		account.AvatarURL = *update.AvatarURL
	}
	if update.SocialLinks != nil {
		account.SocialLinks = update.SocialLinks
	}
	if update.QuickNote != nil {
		account.QuickNote = update.QuickNote
	}
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Follow bumps the target's follower counter.
func (s *AccountService) Follow(ctx context.Context, targetID string) error {
	return s.repo.AdjustFollowers(ctx, targetID, 1)
}

// Unfollow decrements the target's follower counter.
func (s *AccountService) Unfollow(ctx context.Context, targetID string) error {
	return s.repo.AdjustFollowers(ctx, targetID, -1)
}

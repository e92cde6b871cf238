package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/ppk205/comicreader/internal/core/domain"
	"github.com/ppk205/comicreader/internal/core/ports"
)

type stubAccountRepo struct {
	findByUsernameFn  func(ctx context.Context, username string) (*domain.Account, error)
	findByIDFn        func(ctx context.Context, id string) (*domain.Account, error)
	createFn          func(ctx context.Context, account *domain.Account) (*domain.Account, error)
	updateFn          func(ctx context.Context, account *domain.Account) error
	adjustFollowersFn func(ctx context.Context, id string, delta int) error
}

func (s *stubAccountRepo) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return s.findByUsernameFn(ctx, username)
}

func (s *stubAccountRepo) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubAccountRepo) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	return s.createFn(ctx, account)
}

func (s *stubAccountRepo) Update(ctx context.Context, account *domain.Account) error {
	return s.updateFn(ctx, account)
}

func (s *stubAccountRepo) AdjustFollowers(ctx context.Context, id string, delta int) error {
	return s.adjustFollowersFn(ctx, id, delta)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	return string(hash)
}

func TestAuthenticate_Success(t *testing.T) {
	repo := &stubAccountRepo{
		findByUsernameFn: func(_ context.Context, username string) (*domain.Account, error) {
			return &domain.Account{ID: "a1", Username: username, PasswordHash: hashOf(t, "secret")}, nil
		},
	}
	svc := NewAccountService(repo)

	account, err := svc.Authenticate(context.Background(), "neo", "secret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if account.ID != "a1" {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestAuthenticate_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	known := &stubAccountRepo{
		findByUsernameFn: func(context.Context, string) (*domain.Account, error) {
			return &domain.Account{PasswordHash: hashOf(t, "secret")}, nil
		},
	}
	unknown := &stubAccountRepo{
		findByUsernameFn: func(context.Context, string) (*domain.Account, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	_, errWrong := NewAccountService(known).Authenticate(context.Background(), "neo", "bad")
	_, errMissing := NewAccountService(unknown).Authenticate(context.Background(), "ghost", "bad")

	if !errors.Is(errWrong, domain.ErrInvalidCredentials) || !errors.Is(errMissing, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", errWrong, errMissing)
	}
}

func TestAuthenticate_EmptyInputRejected(t *testing.T) {
	svc := NewAccountService(&stubAccountRepo{})
	if _, err := svc.Authenticate(context.Background(), "", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	var stored *domain.Account
	repo := &stubAccountRepo{
		createFn: func(_ context.Context, account *domain.Account) (*domain.Account, error) {
			stored = account
			account.ID = "a1"
			return account, nil
		},
	}
	svc := NewAccountService(repo)

	account, err := svc.Register(context.Background(), "neo", "secret", "neo@zion.io", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if stored.PasswordHash == "secret" || stored.PasswordHash == "" {
		t.Fatalf("password must be stored as a hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if account.Role != domain.RoleUser {
		t.Fatalf("expected default user role, got %q", account.Role)
	}
	if account.DisplayName != "neo" {
		t.Fatalf("expected display name defaulted to username, got %q", account.DisplayName)
	}
}

func TestUpdateProfile_AppliesOnlyProvidedFields(t *testing.T) {
	var updated *domain.Account
	repo := &stubAccountRepo{
		findByIDFn: func(context.Context, string) (*domain.Account, error) {
			return &domain.Account{ID: "a1", DisplayName: "Old", Bio: "keep me"}, nil
		},
		updateFn: func(_ context.Context, account *domain.Account) error {
			updated = account
			return nil
		},
	}
	svc := NewAccountService(repo)

	name := "New"
	account, err := svc.UpdateProfile(context.Background(), "a1", ports.ProfileUpdate{DisplayName: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.DisplayName != "New" || updated.Bio != "keep me" {
		t.Fatalf("partial update misapplied: %+v", updated)
	}
	if account.DisplayName != "New" {
		t.Fatalf("returned account stale: %+v", account)
	}
}

func TestFollowUnfollow_AdjustsCounter(t *testing.T) {
	var deltas []int
	repo := &stubAccountRepo{
		adjustFollowersFn: func(_ context.Context, id string, delta int) error {
			if id != "a2" {
				t.Fatalf("unexpected target %q", id)
			}
			deltas = append(deltas, delta)
			return nil
		},
	}
	svc := NewAccountService(repo)

	if err := svc.Follow(context.Background(), "a2"); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if err := svc.Unfollow(context.Background(), "a2"); err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}
	if len(deltas) != 2 || deltas[0] != 1 || deltas[1] != -1 {
		t.Fatalf("unexpected deltas %v", deltas)
	}
}

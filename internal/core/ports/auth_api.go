package ports

import (
	"context"

	"github.com/ppk205/comicreader/internal/core/domain"
)

// Credentials identifies a user by email or username plus password. When both
// identifiers are set, email wins; the backend always receives an "email"
// field either way.
type Credentials struct {
	Username string
	Email    string
	Password string
}

// AuthResult is the normalized outcome of a successful login or registration.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthAPI is the slice of the backend client the session manager depends on.
type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
}

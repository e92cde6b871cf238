package ports

import "context"

// TokenStore persists the single live session token. Implementations must
// read the value fresh on every call so a Clear in one flow is seen by the
// next request issued anywhere else.
type TokenStore interface {
	// Token returns the stored token, or "" when none is persisted.
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

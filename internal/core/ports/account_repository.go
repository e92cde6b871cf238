package ports

import (
	"context"

	"github.com/ppk205/comicreader/internal/core/domain"
)

// AccountRepository persists the gateway's own user records.
type AccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	// AdjustFollowers atomically shifts the follower counter by delta.
	AdjustFollowers(ctx context.Context, id string, delta int) error
}

// ReadingRepository persists per-user reading history.
type ReadingRepository interface {
	Append(ctx context.Context, entry domain.ReadingEntry) error
	History(ctx context.Context, userID string, limit int) ([]domain.ReadingEntry, error)
}

// ReadingService processes reading events dequeued by the dispatcher.
type ReadingService interface {
	Record(ctx context.Context, entry domain.ReadingEntry) error
}

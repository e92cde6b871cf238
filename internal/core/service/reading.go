package service

import (
	"context"
	"time"

	"github.com/ppk205/comicreader/internal/core/domain"
	"github.com/ppk205/comicreader/internal/core/ports"
)

// ReadingService records and lists per-user reading history. Writes arrive
// through the dispatcher so request handlers never block on the database.
type ReadingService struct {
	repo ports.ReadingRepository
}

func NewReadingService(repo ports.ReadingRepository) *ReadingService {
	return &ReadingService{repo: repo}
}

// Record persists one chapter-read event, stamping the time when absent.
func (s *ReadingService) Record(ctx context.Context, entry domain.ReadingEntry) error {
	if entry.ReadAt.IsZero() {
		entry.ReadAt = time.Now().UTC()
	}
	return s.repo.Append(ctx, entry)
}

// History returns the user's most recent reads, newest first.
func (s *ReadingService) History(ctx context.Context, userID string, limit int) ([]domain.ReadingEntry, error) {
	return s.repo.History(ctx, userID, limit)
}

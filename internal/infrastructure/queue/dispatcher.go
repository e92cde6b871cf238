package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/ppk205/comicreader/internal/core/domain"
	"github.com/ppk205/comicreader/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes reading-history events to a fixed set of workers using
// consistent hashing on the user ID, guaranteeing per-user write ordering
// without blocking the request path.
type Dispatcher struct {
	workers []chan domain.ReadingEntry
	service ports.ReadingService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ReadingService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ReadingEntry, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ReadingEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its user.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(entry domain.ReadingEntry) {
	d.workers[d.shardIndex(entry.UserID)] <- entry
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ReadingEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Record(ctx, entry); err != nil {
				d.log.Error().Err(err).
					Str("user_id", entry.UserID).
					Int("worker_id", id).
					Msg("reading event processing failed")
			}
		}
	}
}

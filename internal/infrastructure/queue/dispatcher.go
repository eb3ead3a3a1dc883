package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Toucher applies a last-seen update for one identity.
type Toucher interface {
	TouchLastSeen(ctx context.Context, email string) error
}

// Dispatcher applies last-seen touches off the request path. Touches are
// sharded to a fixed set of workers by consistent hashing on the email, so
// updates for one identity are applied in order. The authentication guard
// enqueues; it never writes to the store itself.
type Dispatcher struct {
	workers []chan string
	service Toucher
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service Toucher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a touch to the worker responsible for the email. A full
// shard drops the touch instead of stalling the request path; a lost
// last-seen update is harmless.
func (d *Dispatcher) Enqueue(email string) {
	select {
	case d.workers[d.shardIndex(email)] <- email:
	default:
		metrics.LastSeenDropsTotal.Inc()
		d.log.Debug().Str("email", email).Msg("last-seen touch dropped, shard full")
	}
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case email, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.TouchLastSeen(ctx, email); err != nil {
				d.log.Error().Err(err).
					Str("email", email).
					Int("worker_id", id).
					Msg("last-seen touch failed")
			}
		}
	}
}

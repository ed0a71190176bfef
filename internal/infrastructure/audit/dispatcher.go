// Package audit delivers security events to durable storage without blocking
// the request path.
package audit

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/daybook/journal-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// Store abstracts the durable audit log (Mongo).
type Store interface {
	Insert(ctx context.Context, event ports.AuditEvent) error
}

// Dispatcher implements ports.AuditSink with a fixed set of workers sharded
// by subject, so events for one account are persisted in order.
type Dispatcher struct {
	workers []chan ports.AuditEvent
	store   Store
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store Store, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AuditEvent, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event to the worker responsible for its subject. When
// the worker's buffer is full the event is dropped with a warning — audit
// delivery is best-effort and must not stall logins.
func (d *Dispatcher) Record(event ports.AuditEvent) {
	select {
	case d.workers[d.shardIndex(event)] <- event:
	default:
		d.log.Warn().Str("action", event.Action).Msg("audit buffer full, event dropped")
	}
}

// shardIndex maps an event deterministically to a worker index. Events with
// no user id (unknown email) shard by email instead.
func (d *Dispatcher) shardIndex(event ports.AuditEvent) int {
	subject := event.UserID
	if subject == "" {
		subject = event.Email
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
			err := d.store.Insert(insertCtx, event)
			cancel()
			if err != nil {
				d.log.Error().Err(err).
					Str("action", event.Action).
					Int("worker_id", id).
					Msg("audit event persistence failed")
				continue
			}
			d.log.Debug().
				Str("action", event.Action).
				Str("user_id", event.UserID).
				Bool("success", event.Success).
				Msg("audit event recorded")
		}
	}
}

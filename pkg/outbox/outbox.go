// Package outbox is a client-side durable send queue. Events are journaled
// to disk before the first send attempt and drained strictly in order, so
// a crash or a dead network loses nothing and reordering is impossible.
//
// Replay safety comes from the server: event IDs are minted here, before
// journaling, and the ingest endpoint treats a repeated ID as success.
package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one journaled send.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Category   string    `json:"category"`
	Impact     int       `json:"impact"`
	Note       *string   `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Sender delivers one event to the backend. A replayed ID must report
// success, not an error.
type Sender interface {
	Send(ctx context.Context, ev Event) error
}

// Config tunes the drain loop.
type Config struct {
	// InitialBackoff is the wait after the first failed attempt.
	InitialBackoff time.Duration
	// MaxBackoff caps the doubling.
	MaxBackoff time.Duration
}

// DefaultConfig matches the mobile client's retry curve.
func DefaultConfig() Config {
	return Config{
		InitialBackoff: time.Second,
		MaxBackoff:     time.Minute,
	}
}

// Outbox drains a journal through a sender, one event at a time.
type Outbox struct {
	journal *Journal
	sender  Sender
	cfg     Config
	log     *slog.Logger

	mu      sync.Mutex
	pending []Event
	kick    chan struct{}
}

// New creates an outbox over an opened journal. Events already in the
// journal from a previous run are picked up in their original order.
func New(journal *Journal, sender Sender, cfg Config, logger *slog.Logger) *Outbox {
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = cfg.InitialBackoff
	}
	return &Outbox{
		journal: journal,
		sender:  sender,
		cfg:     cfg,
		log:     logger.With("component", "outbox"),
		pending: journal.Events(),
		kick:    make(chan struct{}, 1),
	}
}

// Enqueue journals the event and wakes the drain loop. The event is
// durable once Enqueue returns.
func (o *Outbox) Enqueue(ev Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.journal.Append(ev); err != nil {
		return fmt.Errorf("journal append: %w", err)
	}
	o.pending = append(o.pending, ev)

	select {
	case o.kick <- struct{}{}:
	default:
	}
	return nil
}

// Len returns the number of undelivered events.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}

// Run drains the queue until the context is cancelled. Strict FIFO: the
// head is retried with doubling backoff and nothing behind it is attempted
// until it goes through.
func (o *Outbox) Run(ctx context.Context) error {
	backoff := o.cfg.InitialBackoff

	for {
		head, ok := o.head()
		if !ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-o.kick:
				continue
			}
		}

		if err := o.sender.Send(ctx, head); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			o.log.Warn("send failed, backing off",
				slog.String("event_id", head.ID.String()),
				slog.Duration("backoff", backoff),
				slog.String("error", err.Error()),
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff *= 2; backoff > o.cfg.MaxBackoff {
				backoff = o.cfg.MaxBackoff
			}
			continue
		}

		backoff = o.cfg.InitialBackoff
		if err := o.pop(); err != nil {
			o.log.Error("journal rewrite failed", slog.String("error", err.Error()))
		}
	}
}

func (o *Outbox) head() (Event, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.pending) == 0 {
		return Event{}, false
	}
	return o.pending[0], true
}

func (o *Outbox) pop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.pending = o.pending[1:]
	return o.journal.Rewrite(o.pending)
}

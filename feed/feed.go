package feed

import (
	"context"
	"sync"
	"time"

	"github.com/sanketa/backend/models"
)

// SnapshotSource provides the current snapshot abstraction every delivery
// path shares. The store implements it; tests use fakes.
type SnapshotSource interface {
	GetOrCreate(ctx context.Context, city string) (models.Snapshot, error)
	DefaultSnapshot() models.Snapshot
}

// Feed is the live update distributor. Each subscription gets the current
// snapshot immediately, then one snapshot per interval until it is closed.
// A session id enforces the at-most-one-stream-per-session rule: a new
// subscription with an already-registered session terminates the old one.
type Feed struct {
	src      SnapshotSource
	interval time.Duration

	mu       sync.Mutex
	sessions map[string]*Subscription
}

// New creates a distributor emitting one snapshot per interval.
func New(src SnapshotSource, interval time.Duration) *Feed {
	return &Feed{
		src:      src,
		interval: interval,
		sessions: make(map[string]*Subscription),
	}
}

// Subscription is one live snapshot stream. C is closed after Close is
// called or the parent context ends; no events are delivered past that
// point.
type Subscription struct {
	C <-chan models.Snapshot

	ch      chan models.Snapshot
	cancel  context.CancelFunc
	session string
}

// Close terminates the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.cancel()
}

// Subscribe starts a snapshot stream for a city. An empty city follows the
// default entry. The first snapshot is delivered without waiting for the
// next tick.
func (f *Feed) Subscribe(ctx context.Context, city, session string) *Subscription {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		ch:      make(chan models.Snapshot, 1),
		cancel:  cancel,
		session: session,
	}
	sub.C = sub.ch

	if session != "" {
		f.mu.Lock()
		if prev := f.sessions[session]; prev != nil {
			prev.cancel()
		}
		f.sessions[session] = sub
		f.mu.Unlock()
	}

	go f.run(subCtx, city, sub)
	return sub
}

func (f *Feed) run(ctx context.Context, city string, sub *Subscription) {
	defer func() {
		if sub.session != "" {
			f.mu.Lock()
			if f.sessions[sub.session] == sub {
				delete(f.sessions, sub.session)
			}
			f.mu.Unlock()
		}
		close(sub.ch)
	}()

	f.deliver(ctx, city, sub)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.deliver(ctx, city, sub)
		}
	}
}

// deliver pushes the current snapshot, replacing a pending one when the
// consumer lags so it always sees the freshest state.
func (f *Feed) deliver(ctx context.Context, city string, sub *Subscription) {
	snap := f.current(ctx, city)
	select {
	case sub.ch <- snap:
	default:
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- snap:
		default:
		}
	}
}

func (f *Feed) current(ctx context.Context, city string) models.Snapshot {
	if city == "" {
		return f.src.DefaultSnapshot()
	}
	snap, err := f.src.GetOrCreate(ctx, city)
	if err != nil {
		// Unresolvable city: fall back to the default set, same as a
		// stream opened with no city.
		return f.src.DefaultSnapshot()
	}
	return snap
}

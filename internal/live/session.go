// Package live ties one mounted view to the change feed: a Session owns
// one Reconciler and at most one feed subscription, and guarantees the
// subscription is released exactly once on teardown.
package live

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/domain"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/feed"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/logger"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/reconciler"
)

// Subscriber is the slice of the feed a session consumes.
type Subscriber interface {
	Subscribe(ctx context.Context, ownerID uuid.UUID, onEvent feed.Handler) (*feed.Subscription, error)
}

// Session is the server-side counterpart of one open browser tab.
type Session struct {
	owner      uuid.UUID
	rec        *reconciler.Reconciler
	subscriber Subscriber
	log        logger.Logger

	sub     *feed.Subscription
	updates chan struct{}
}

// NewSession creates an unopened session for one identity.
func NewSession(owner uuid.UUID, rec *reconciler.Reconciler, subscriber Subscriber, log logger.Logger) *Session {
	return &Session{
		owner:      owner,
		rec:        rec,
		subscriber: subscriber,
		log:        log,
		updates:    make(chan struct{}, 1),
	}
}

// Open subscribes to the owner's feed and then bootstraps the
// collection. Subscribing first means an insert racing the bootstrap is
// delivered twice at worst, which the reconciler's idempotent add
// absorbs; an insert occurring before the subscription cannot be
// repaired and is only observed on the next bootstrap.
func (s *Session) Open(ctx context.Context) error {
	if s.owner == uuid.Nil {
		return reconciler.ErrNotAuthenticated
	}

	sub, err := s.subscriber.Subscribe(ctx, s.owner, s.apply)
	if err != nil {
		return fmt.Errorf("failed to open live view: %w", err)
	}
	s.sub = sub

	if err := s.rec.Bootstrap(ctx, s.owner); err != nil {
		// Bootstrap is retryable by reopening the view; do not leak the
		// subscription in the meantime.
		s.Close()
		return err
	}

	s.log.Debug("live view opened",
		logger.String("owner_id", s.owner.String()),
		logger.Int("bootstrapped", s.rec.Len()))

	s.notify()
	return nil
}

// apply maps one validated feed event onto the reconciler. Events are
// delivered sequentially by the feed pump, each handled to completion.
func (s *Session) apply(evt domain.ChangeEvent) {
	switch evt.Kind {
	case domain.EventAdded:
		s.rec.ApplyAdded(*evt.Bookmark)
	case domain.EventReplaced:
		s.rec.ApplyReplaced(*evt.Bookmark)
	case domain.EventRemoved:
		s.rec.ApplyRemoved(evt.ID)
	}
	s.notify()
}

// notify coalesces pending snapshot changes into a single wakeup.
func (s *Session) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

// Updates signals that the snapshot changed since it was last read.
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

// Snapshot returns the current collection for rendering.
func (s *Session) Snapshot() []domain.Bookmark {
	return s.rec.Snapshot()
}

// Close releases the feed subscription. Safe to call on every exit
// path: closing twice, or closing a session whose Open never completed,
// is a no-op.
func (s *Session) Close() {
	s.sub.Close()
}

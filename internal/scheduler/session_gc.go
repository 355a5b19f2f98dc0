package scheduler

import (
	"context"
	"time"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/logger"
)

// SessionStore is the slice of the session repository the sweeper uses.
type SessionStore interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionGC periodically removes expired session rows so revoked-by-age
// logins do not accumulate forever.
type SessionGC struct {
	store    SessionStore
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewSessionGC creates a session sweeper.
func NewSessionGC(store SessionStore, log logger.Logger, interval time.Duration) *SessionGC {
	return &SessionGC{
		store:    store,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs a sweep immediately, then keeps sweeping on the interval
// until Stop is called or the context ends.
func (gc *SessionGC) Start(ctx context.Context) error {
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial session sweep failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("session sweep failed",
						logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the sweeper.
func (gc *SessionGC) Stop() {
	close(gc.stopCh)
}

// Collect removes all sessions past their expiry.
func (gc *SessionGC) Collect(ctx context.Context) error {
	deleted, err := gc.store.DeleteExpired(ctx)
	if err != nil {
		return err
	}

	if deleted > 0 {
		gc.logger.Info("session sweep completed",
			logger.Int("deleted", int(deleted)))
	} else {
		gc.logger.Debug("no expired sessions to sweep")
	}

	return nil
}

package reconciler

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/domain"
)

// ErrNotAuthenticated is returned by Bootstrap when no identity is
// established. Callers typically redirect to sign-in.
var ErrNotAuthenticated = errors.New("no authenticated identity")

// FetchError wraps the upstream error of a failed bootstrap query.
// Bootstrap is idempotent, so the caller may simply retry.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "bookmark fetch failed: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// Lister is the one-shot owner-scoped query the bootstrap consumes.
// Results must be ordered newest first.
type Lister interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Bookmark, error)
}

// Reconciler holds the display snapshot of one account's bookmarks and
// keeps it consistent with the change feed. One instance per mounted
// view; the feed pump applies events from a single goroutine, but
// snapshots may be read from others, so access is guarded.
type Reconciler struct {
	lister Lister

	mu    sync.RWMutex
	items []domain.Bookmark
}

// New creates an empty Reconciler backed by the given query service.
func New(lister Lister) *Reconciler {
	return &Reconciler{lister: lister}
}

// Bootstrap replaces the held sequence with a fresh owner-scoped fetch,
// ordered newest first. On failure the previously held sequence is left
// untouched so the view keeps rendering stale-but-consistent data while
// the caller retries.
func (r *Reconciler) Bootstrap(ctx context.Context, ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return ErrNotAuthenticated
	}

	items, err := r.lister.ListByOwner(ctx, ownerID)
	if err != nil {
		return &FetchError{Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
	return nil
}

// ApplyAdded prepends a record delivered by the live feed. A record
// whose ID is already held is skipped: the feed may redeliver an event
// already reflected by a concurrent bootstrap.
//
// Prepending regardless of CreatedAt treats notification recency as a
// proxy for creation recency. Concurrent inserts from two sessions can
// therefore appear out of creation order; that is the accepted behavior.
func (r *Reconciler) ApplyAdded(b domain.Bookmark) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(b.ID) >= 0 {
		return
	}
	r.items = append([]domain.Bookmark{b}, r.items...)
}

// ApplyReplaced swaps the held record with the same ID in place,
// preserving its position. An unknown ID is a silent no-op: the record
// may have been created and updated before the bootstrap observed it.
func (r *Reconciler) ApplyReplaced(b domain.Bookmark) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(b.ID); i >= 0 {
		r.items[i] = b
	}
}

// ApplyRemoved drops the held record with the given ID. Absence is a
// silent no-op.
func (r *Reconciler) ApplyRemoved(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.items = append(r.items[:i], r.items[i+1:]...)
	}
}

// Snapshot returns a copy of the held sequence for rendering.
func (r *Reconciler) Snapshot() []domain.Bookmark {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Bookmark, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of held records.
func (r *Reconciler) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// indexOf returns the position of id in the held sequence, or -1.
// Callers must hold the lock.
func (r *Reconciler) indexOf(id uuid.UUID) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

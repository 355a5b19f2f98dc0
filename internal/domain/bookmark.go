package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark is a single saved URL belonging to one account.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is assigned by Postgres at insert time and never changes.
	// It is the key every live-feed reconciliation is performed on.
	ID uuid.UUID `json:"id"`

	// OwnerID is the account that created the bookmark. Set once at
	// creation; every query and feed channel is scoped by it.
	OwnerID uuid.UUID `json:"owner_id"`

	// ─────────────────────────────
	// User-editable fields
	// ─────────────────────────────

	// Title is the non-empty display string.
	Title string `json:"title"`

	// Location is the bookmarked URL.
	Location string `json:"location"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is assigned by Postgres and drives the default display
	// order (newest first).
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is maintained by the store on every mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

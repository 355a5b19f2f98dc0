package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// EventKind identifies the three change notifications the feed can carry.
type EventKind string

const (
	EventAdded    EventKind = "added"
	EventReplaced EventKind = "replaced"
	EventRemoved  EventKind = "removed"
)

// ErrMalformedEvent marks a feed payload that failed boundary validation.
// Such events are dropped, never applied.
var ErrMalformedEvent = errors.New("malformed change event")

// ChangeEvent is one notification delivered over the change feed.
// Added and Replaced carry the full record; Removed carries only the ID.
type ChangeEvent struct {
	Kind     EventKind `json:"kind"`
	Bookmark *Bookmark `json:"bookmark,omitempty"`
	ID       uuid.UUID `json:"id,omitempty"`
}

// Validate checks a decoded event against the shape its kind requires.
// Feed payloads are untrusted at this boundary: anything that does not
// parse into a usable event is rejected here rather than applied.
func (e ChangeEvent) Validate() error {
	switch e.Kind {
	case EventAdded, EventReplaced:
		if e.Bookmark == nil {
			return fmt.Errorf("%w: %s event without bookmark", ErrMalformedEvent, e.Kind)
		}
		if e.Bookmark.ID == uuid.Nil {
			return fmt.Errorf("%w: %s event with nil bookmark id", ErrMalformedEvent, e.Kind)
		}
		if e.Bookmark.OwnerID == uuid.Nil {
			return fmt.Errorf("%w: %s event with nil owner id", ErrMalformedEvent, e.Kind)
		}
	case EventRemoved:
		if e.ID == uuid.Nil {
			return fmt.Errorf("%w: removed event with nil id", ErrMalformedEvent)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrMalformedEvent, e.Kind)
	}
	return nil
}

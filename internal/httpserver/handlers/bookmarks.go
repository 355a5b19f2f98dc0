package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/auth"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/domain"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/httpserver/deps"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/logger"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/store"
)

// identity pulls the authenticated caller off the context. Routes are
// wrapped in mw.Authenticate, so absence means a wiring bug.
func identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
	}
	return id, ok
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bookmark id")
		return uuid.Nil, false
	}
	return id, true
}

// publish broadcasts a change event after a successful write. The row
// is already committed, so failures are logged rather than surfaced.
func publish(ctx context.Context, d deps.Deps, ownerID uuid.UUID, evt domain.ChangeEvent) {
	if err := d.Publisher.Publish(ctx, ownerID, evt); err != nil {
		d.Logger.Warn("failed to publish change event",
			logger.String("kind", string(evt.Kind)),
			logger.Error(err))
	}
}

// ListBookmarks returns the caller's bookmarks, newest first.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(w, r)
		if !ok {
			return
		}

		items, err := d.Bookmarks.ListByOwner(r.Context(), id.AccountID)
		if err != nil {
			d.Logger.Error("failed to list bookmarks", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list bookmarks")
			return
		}
		if items == nil {
			items = []domain.Bookmark{}
		}

		writeJSON(w, http.StatusOK, items)
	}
}

// GetBookmark returns one bookmark owned by the caller.
func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(w, r)
		if !ok {
			return
		}
		bookmarkID, ok := pathID(w, r)
		if !ok {
			return
		}

		b, err := d.Bookmarks.GetByID(r.Context(), bookmarkID, id.AccountID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "bookmark not found")
				return
			}
			d.Logger.Error("failed to get bookmark", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to get bookmark")
			return
		}

		writeJSON(w, http.StatusOK, b)
	}
}

// CreateBookmark stores a new bookmark and broadcasts the addition.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(w, r)
		if !ok {
			return
		}

		var in domain.BookmarkInput
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		b := &domain.Bookmark{
			OwnerID:  id.AccountID,
			Title:    in.Title,
			Location: in.Location,
		}
		if err := d.Bookmarks.Create(r.Context(), b); err != nil {
			d.Logger.Error("failed to create bookmark", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to create bookmark")
			return
		}

		publish(r.Context(), d, id.AccountID, domain.ChangeEvent{
			Kind:     domain.EventAdded,
			Bookmark: b,
		})

		writeJSON(w, http.StatusCreated, b)
	}
}

// UpdateBookmark rewrites title and location in place and broadcasts
// the replacement.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(w, r)
		if !ok {
			return
		}
		bookmarkID, ok := pathID(w, r)
		if !ok {
			return
		}

		var in domain.BookmarkInput
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		b := &domain.Bookmark{
			ID:       bookmarkID,
			OwnerID:  id.AccountID,
			Title:    in.Title,
			Location: in.Location,
		}
		if err := d.Bookmarks.Update(r.Context(), b); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "bookmark not found")
				return
			}
			d.Logger.Error("failed to update bookmark", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to update bookmark")
			return
		}

		publish(r.Context(), d, id.AccountID, domain.ChangeEvent{
			Kind:     domain.EventReplaced,
			Bookmark: b,
		})

		writeJSON(w, http.StatusOK, b)
	}
}

// DeleteBookmark removes a bookmark and broadcasts the removal.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(w, r)
		if !ok {
			return
		}
		bookmarkID, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := d.Bookmarks.Delete(r.Context(), bookmarkID, id.AccountID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "bookmark not found")
				return
			}
			d.Logger.Error("failed to delete bookmark", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete bookmark")
			return
		}

		publish(r.Context(), d, id.AccountID, domain.ChangeEvent{
			Kind: domain.EventRemoved,
			ID:   bookmarkID,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

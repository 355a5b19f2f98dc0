package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/httpserver/deps"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/live"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/logger"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/reconciler"
)

const heartbeatInterval = 25 * time.Second

// LiveBookmarks streams the caller's bookmark list over SSE. The client
// receives a full snapshot on connect and again after every change; the
// stream stays open until the client disconnects.
func LiveBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(w, r)
		if !ok {
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		sess := live.NewSession(id.AccountID, reconciler.New(d.Bookmarks), d.Subscriber, d.Logger)
		if err := sess.Open(r.Context()); err != nil {
			var fetchErr *reconciler.FetchError
			switch {
			case errors.Is(err, reconciler.ErrNotAuthenticated):
				writeError(w, http.StatusUnauthorized, "not authenticated")
			case errors.As(err, &fetchErr):
				d.Logger.Error("live view bootstrap failed", logger.Error(err))
				writeError(w, http.StatusBadGateway, "failed to load bookmarks")
			default:
				d.Logger.Error("live view open failed", logger.Error(err))
				writeError(w, http.StatusInternalServerError, "failed to open live view")
			}
			return
		}
		defer sess.Close()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		if err := writeSnapshot(w, flusher, sess); err != nil {
			return
		}

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-sess.Updates():
				if err := writeSnapshot(w, flusher, sess); err != nil {
					return
				}
			case <-heartbeat.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeSnapshot(w http.ResponseWriter, flusher http.Flusher, sess *live.Session) error {
	data, err := json.Marshal(sess.Snapshot())
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/hall-of-shame/events"
	"github.com/danielhkuo/hall-of-shame/middleware"
	"github.com/danielhkuo/hall-of-shame/store"
)

type EventsHandler struct {
	store *store.Store
	bus   *events.Broadcaster
}

func NewEventsHandler(st *store.Store, bus *events.Broadcaster) *EventsHandler {
	return &EventsHandler{store: st, bus: bus}
}

// Stream handles GET /sessions/{code}/events
// Server-sent events: the client gets an initial session snapshot, then a
// push for every roster, vote, session, and verdict change until it
// disconnects.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(h.store, w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.bus.Subscribe(sess.Code)
	defer h.bus.Unsubscribe(sess.Code, ch)

	slog.Info("sse client connected", "code", sess.Code, "subscribers", h.bus.SubscriberCount(sess.Code))

	// Initial snapshot so a reconnecting client doesn't wait for the next
	// change to learn the current state.
	if data, err := jsonMarshal(sess); err == nil {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", events.EventSession, data)
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			slog.Info("sse client disconnected", "code", sess.Code)
			return
		case msg := <-ch:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}

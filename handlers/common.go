// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/hall-of-shame/events"
	"github.com/danielhkuo/hall-of-shame/middleware"
	"github.com/danielhkuo/hall-of-shame/models"
	"github.com/danielhkuo/hall-of-shame/store"
)

// loadSession resolves the {code} path parameter. On failure it writes the
// error response and returns ok=false.
func loadSession(st *store.Store, w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return models.Session{}, false
	}

	sess, err := st.SessionByCode(code)
	if errors.Is(err, store.ErrSessionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return models.Session{}, false
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Session{}, false
	}
	return sess, true
}

// requireHost checks that the acting player is the session host. Host-only
// transitions from non-hosts are rejected, never silently executed.
func requireHost(w http.ResponseWriter, r *http.Request, sess models.Session) bool {
	if middleware.PlayerID(r) != sess.HostID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the host may do this")
		return false
	}
	return true
}

func validNickname(nickname string) bool {
	return len(nickname) >= 1 && len(nickname) <= 12
}

func jsonMarshal(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	return string(data), err
}

// notifySession pushes a fresh session snapshot to subscribers.
func notifySession(bus *events.Broadcaster, sess models.Session) {
	data, err := json.Marshal(sess)
	if err != nil {
		slog.Error("failed to marshal session event", "error", err)
		return
	}
	bus.Broadcast(sess.Code, events.EventSession, string(data))
}

// notifyRoster pushes the current roster to subscribers.
func notifyRoster(bus *events.Broadcaster, st *store.Store, code string) {
	players, err := st.PlayersBySession(code)
	if err != nil {
		slog.Error("failed to load roster for event", "error", err)
		return
	}
	data, err := json.Marshal(players)
	if err != nil {
		slog.Error("failed to marshal roster event", "error", err)
		return
	}
	bus.Broadcast(code, events.EventRoster, string(data))
}

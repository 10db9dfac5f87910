// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/danielhkuo/hall-of-shame/auth"
	"github.com/danielhkuo/hall-of-shame/cliparse"
	"github.com/danielhkuo/hall-of-shame/events"
	"github.com/danielhkuo/hall-of-shame/middleware"
	"github.com/danielhkuo/hall-of-shame/models"
	"github.com/danielhkuo/hall-of-shame/store"
)

// codeAttempts bounds regenerate-and-retry on room code collision.
const codeAttempts = 5

type SessionHandler struct {
	store *store.Store
	cfg   cliparse.Config
	bus   *events.Broadcaster
}

func NewSessionHandler(st *store.Store, cfg cliparse.Config, bus *events.Broadcaster) *SessionHandler {
	return &SessionHandler{store: st, cfg: cfg, bus: bus}
}

// Create handles POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !validNickname(req.Nickname) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname must be 1-12 characters")
		return
	}

	playerID := req.PlayerID
	if playerID == "" {
		playerID = auth.NewPlayerID()
	}

	sessionID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate session ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	now := time.Now()
	sess := models.Session{
		ID:        sessionID,
		HostID:    playerID,
		Status:    models.StatusLobby,
		CreatedAt: now,
	}

	// Room codes collide; regenerate a bounded number of times.
	for attempt := 0; ; attempt++ {
		sess.Code = auth.GenerateRoomCode()
		err = h.store.CreateSession(sess)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrCodeTaken) {
			slog.Error("failed to insert session", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
			return
		}
		if attempt == codeAttempts-1 {
			slog.Error("room code collisions exhausted retries", "attempts", codeAttempts)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
			return
		}
	}

	host := models.Player{
		ID:          playerID,
		Nickname:    req.Nickname,
		SessionCode: sess.Code,
		JoinedAt:    now,
		Active:      true,
	}
	if err := h.store.UpsertPlayer(host); err != nil {
		slog.Error("failed to insert host player", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("session created", "session_id", sess.ID, "code", sess.Code, "host", playerID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		Session: sess,
		Player:  host,
	})
}

// Join handles POST /sessions/{code}/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(h.store, w, r)
	if !ok {
		return
	}

	var req models.JoinSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !validNickname(req.Nickname) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname must be 1-12 characters")
		return
	}

	if sess.Status == models.StatusEnded {
		middleware.ErrorResponse(w, http.StatusConflict, "Session has ended")
		return
	}

	playerID := req.PlayerID
	if playerID == "" {
		playerID = auth.NewPlayerID()
	}

	player := models.Player{
		ID:          playerID,
		Nickname:    req.Nickname,
		SessionCode: sess.Code,
		JoinedAt:    time.Now(),
		Active:      true,
	}
	if err := h.store.UpsertPlayer(player); err != nil {
		slog.Error("failed to upsert player", "error", err, "session_id", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join session")
		return
	}

	slog.Info("player joined", "session_id", sess.ID, "player_id", playerID, "nickname", req.Nickname)

	notifyRoster(h.bus, h.store, sess.Code)

	middleware.JSONResponse(w, http.StatusOK, models.JoinSessionResponse{
		Session: sess,
		Player:  player,
	})
}

// Get handles GET /sessions/{code}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(h.store, w, r)
	if !ok {
		return
	}

	players, err := h.store.PlayersBySession(sess.Code)
	if err != nil {
		slog.Error("failed to query players", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	roster := make([]models.RosterEntry, 0, len(players))
	for _, p := range players {
		roster = append(roster, models.RosterEntry{
			Player: p,
			Joined: humanize.Time(p.JoinedAt),
			IsHost: p.ID == sess.HostID,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionView{
		Session: sess,
		Roster:  roster,
	})
}

// QR handles GET /sessions/{code}/qr
// Returns a PNG QR code of the join URL for the session.
func (h *SessionHandler) QR(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(h.store, w, r)
	if !ok {
		return
	}

	png, err := qrcode.Encode(h.cfg.BaseURL+"/join/"+sess.Code, qrcode.Medium, 256)
	if err != nil {
		slog.Error("failed to encode QR code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

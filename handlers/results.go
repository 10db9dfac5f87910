// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/hall-of-shame/cliparse"
	"github.com/danielhkuo/hall-of-shame/events"
	"github.com/danielhkuo/hall-of-shame/game"
	"github.com/danielhkuo/hall-of-shame/middleware"
	"github.com/danielhkuo/hall-of-shame/models"
	"github.com/danielhkuo/hall-of-shame/store"
)

type ResultsHandler struct {
	store *store.Store
	cfg   cliparse.Config
	bus   *events.Broadcaster
}

func NewResultsHandler(st *store.Store, cfg cliparse.Config, bus *events.Broadcaster) *ResultsHandler {
	return &ResultsHandler{store: st, cfg: cfg, bus: bus}
}

// RoundTally handles GET /sessions/{code}/rounds/current/tally
// Running tally for the current round; stays available after the round
// closes, until the next round replaces it.
func (h *ResultsHandler) RoundTally(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(h.store, w, r)
	if !ok {
		return
	}

	if sess.CurrentRoundID == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "No round has been opened")
		return
	}

	votes, err := h.store.VotesForRound(*sess.CurrentRoundID)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	roster, err := h.store.PlayersBySession(sess.Code)
	if err != nil {
		slog.Error("failed to query players", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		Entries:    game.Tally(votes, roster),
		VoteCount:  len(votes),
		RosterSize: len(roster),
	})
}

// SessionTally handles GET /sessions/{code}/tally
// Session-scope tally across all rounds, with each player's most common
// vote reason.
func (h *ResultsHandler) SessionTally(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(h.store, w, r)
	if !ok {
		return
	}

	votes, err := h.store.VotesForSession(sess.Code)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	roster, err := h.store.PlayersBySession(sess.Code)
	if err != nil {
		slog.Error("failed to query players", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	entries := game.Tally(votes, roster)
	for i := range entries {
		entries[i].TopReason = game.TopReason(votes, entries[i].PlayerID)
	}

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		Entries:    entries,
		VoteCount:  len(votes),
		RosterSize: len(roster),
	})
}

// End handles POST /sessions/{code}/end
// Host-only. Moves the session to ENDED and decides the final verdict in
// the same write: the single tie-break draw happens here, once, and the
// outcome is persisted so every observer reads the same winner. Ending an
// already-ended session returns the stored verdict.
func (h *ResultsHandler) End(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(h.store, w, r)
	if !ok {
		return
	}
	if !requireHost(w, r, sess) {
		return
	}

	if sess.Status == models.StatusEnded {
		h.respondVerdict(w, sess)
		return
	}

	if _, err := game.NextStatus(sess.Status, game.EventEndSession); err != nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot end session while it is "+sess.Status)
		return
	}

	votes, err := h.store.VotesForSession(sess.Code)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	roster, err := h.store.PlayersBySession(sess.Code)
	if err != nil {
		slog.Error("failed to query players", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	standings := game.Tally(votes, roster)
	outcome := game.DetectTie(standings)

	var winnerID *string
	var winnerIndex *int
	switch {
	case outcome.Tied:
		idx := game.ResolveTie(outcome.Candidates)
		winnerID = &outcome.Candidates[idx].PlayerID
		winnerIndex = &idx
	case len(standings) > 0 && standings[0].Count > 0:
		winnerID = &standings[0].PlayerID
	}

	err = h.store.EndSession(sess.ID, winnerID, winnerIndex)
	if errors.Is(err, store.ErrStaleTransition) {
		// Concurrent end: read back whatever verdict won.
		sess, err = h.store.SessionByCode(sess.Code)
		if err == nil && sess.Status == models.StatusEnded {
			h.respondVerdict(w, sess)
			return
		}
		middleware.ErrorResponse(w, http.StatusConflict, "Session status changed, try again")
		return
	}
	if err != nil {
		slog.Error("failed to end session", "error", err, "session_id", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to end session")
		return
	}

	slog.Info("session ended", "session_id", sess.ID, "tie_broken", outcome.Tied)

	sess.Status = models.StatusEnded
	sess.CurrentRoundID = nil
	sess.RoundEndTime = nil
	sess.WinnerID = winnerID
	sess.WinnerIndex = winnerIndex
	notifySession(h.bus, sess)

	verdict, err := h.buildVerdict(sess)
	if err != nil {
		slog.Error("failed to build verdict", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if data, err := jsonMarshal(verdict); err == nil {
		h.bus.Broadcast(sess.Code, events.EventVerdict, data)
	}

	middleware.JSONResponse(w, http.StatusOK, verdict)
}

// Verdict handles GET /sessions/{code}/verdict
// The verdict is hidden until the session ends; afterwards it is the
// persisted outcome, never re-drawn.
func (h *ResultsHandler) Verdict(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(h.store, w, r)
	if !ok {
		return
	}

	if sess.Status != models.StatusEnded {
		middleware.ErrorResponse(w, http.StatusForbidden, "Verdict is hidden until the session ends")
		return
	}

	h.respondVerdict(w, sess)
}

func (h *ResultsHandler) respondVerdict(w http.ResponseWriter, sess models.Session) {
	verdict, err := h.buildVerdict(sess)
	if err != nil {
		slog.Error("failed to build verdict", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, verdict)
}

// buildVerdict reconstructs standings from the vote record and combines
// them with the winner persisted at end time.
func (h *ResultsHandler) buildVerdict(sess models.Session) (models.Verdict, error) {
	votes, err := h.store.VotesForSession(sess.Code)
	if err != nil {
		return models.Verdict{}, err
	}
	roster, err := h.store.PlayersBySession(sess.Code)
	if err != nil {
		return models.Verdict{}, err
	}

	standings := game.Tally(votes, roster)
	outcome := game.DetectTie(standings)

	verdict := models.Verdict{
		Standings:   standings,
		WinnerIndex: -1,
	}
	if outcome.Tied {
		verdict.Candidates = outcome.Candidates
	}

	if sess.WinnerID != nil {
		verdict.Decided = true
		for i := range standings {
			if standings[i].PlayerID == *sess.WinnerID {
				entry := standings[i]
				entry.TopReason = game.TopReason(votes, entry.PlayerID)
				verdict.Winner = &entry
				break
			}
		}
		if sess.WinnerIndex != nil {
			verdict.TieBroken = true
			verdict.WinnerIndex = *sess.WinnerIndex
		}
	} else {
		verdict.Message = "Not enough shame recorded to crown a culprit"
	}

	return verdict, nil
}

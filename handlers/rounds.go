// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/hall-of-shame/auth"
	"github.com/danielhkuo/hall-of-shame/cliparse"
	"github.com/danielhkuo/hall-of-shame/events"
	"github.com/danielhkuo/hall-of-shame/game"
	"github.com/danielhkuo/hall-of-shame/middleware"
	"github.com/danielhkuo/hall-of-shame/models"
	"github.com/danielhkuo/hall-of-shame/store"
)

type RoundHandler struct {
	store *store.Store
	cfg   cliparse.Config
	bus   *events.Broadcaster
}

func NewRoundHandler(st *store.Store, cfg cliparse.Config, bus *events.Broadcaster) *RoundHandler {
	return &RoundHandler{store: st, cfg: cfg, bus: bus}
}

// Open handles POST /sessions/{code}/rounds
// Host-only. Creates a round and moves the session into VOTING; valid from
// LOBBY (first round) and FINISHED (another round).
func (h *RoundHandler) Open(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(h.store, w, r)
	if !ok {
		return
	}
	if !requireHost(w, r, sess) {
		return
	}

	if _, err := game.NextStatus(sess.Status, game.EventOpenRound); err != nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot start a round while session is "+sess.Status)
		return
	}

	roundID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate round ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to open round")
		return
	}

	now := time.Now()
	round := models.Round{
		ID:          roundID,
		SessionCode: sess.Code,
		CreatedAt:   now,
		EndTime:     now.Add(models.RoundDuration),
	}

	err = h.store.StartRound(sess.ID, sess.Status, round)
	if errors.Is(err, store.ErrStaleTransition) {
		middleware.ErrorResponse(w, http.StatusConflict, "Session status changed, try again")
		return
	}
	if err != nil {
		slog.Error("failed to start round", "error", err, "session_id", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to open round")
		return
	}

	slog.Info("round opened", "session_id", sess.ID, "round_id", round.ID, "ends_at", round.EndTime)

	sess.Status = models.StatusVoting
	sess.CurrentRoundID = &round.ID
	sess.RoundEndTime = &round.EndTime
	notifySession(h.bus, sess)

	middleware.JSONResponse(w, http.StatusCreated, models.OpenRoundResponse{Round: round})
}

// Vote handles POST /sessions/{code}/votes
// Records one vote for the current round. One vote per voter per round;
// the first write wins and a duplicate reports 409.
func (h *RoundHandler) Vote(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(h.store, w, r)
	if !ok {
		return
	}

	voterID := middleware.PlayerID(r)
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Player-ID header required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !models.ValidReason(req.Reason) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "reason must be one of the allowed vote reasons")
		return
	}

	if sess.Status != models.StatusVoting || sess.CurrentRoundID == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Session is not collecting votes")
		return
	}

	active, err := h.store.ActivePlayer(sess.Code, voterID)
	if err != nil {
		slog.Error("failed to check voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !active {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter is not an active roster member")
		return
	}

	vote := models.Vote{
		RoundID:     *sess.CurrentRoundID,
		VoterID:     voterID,
		TargetID:    req.TargetID,
		Reason:      req.Reason,
		SessionCode: sess.Code,
		CreatedAt:   time.Now(),
	}

	err = h.store.RecordVote(vote)
	if errors.Is(err, store.ErrInvalidTarget) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "target is not an active roster member")
		return
	}
	if errors.Is(err, store.ErrDuplicateVote) {
		middleware.ErrorResponse(w, http.StatusConflict, "You already voted this round")
		return
	}
	if err != nil {
		slog.Error("failed to record vote", "error", err, "round_id", vote.RoundID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded", "round_id", vote.RoundID, "voter_id", voterID)

	h.notifyVotes(sess, vote.RoundID)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		Message: "Vote locked in",
	})
}

// Close handles POST /sessions/{code}/rounds/close
// Host-only. Closes the current round when every active player has voted
// or the round's end time has passed. Closing an already-closed round is a
// no-op, not an error.
func (h *RoundHandler) Close(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(h.store, w, r)
	if !ok {
		return
	}
	if !requireHost(w, r, sess) {
		return
	}

	// Idempotent: a repeated close request after the transition happened
	// is answered, not rejected.
	if sess.Status == models.StatusFinished {
		middleware.JSONResponse(w, http.StatusOK, models.CloseRoundResponse{
			Closed:  false,
			Message: "Round already closed",
		})
		return
	}
	if sess.Status != models.StatusVoting || sess.CurrentRoundID == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "No round is collecting votes")
		return
	}

	round, err := h.store.RoundByID(*sess.CurrentRoundID)
	if err != nil {
		slog.Error("failed to query round", "error", err, "round_id", *sess.CurrentRoundID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	roster, err := h.store.PlayersBySession(sess.Code)
	if err != nil {
		slog.Error("failed to query players", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	votes, err := h.store.VotesForRound(round.ID)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !game.CloseEligible(round, roster, votes, time.Now()) {
		middleware.ErrorResponse(w, http.StatusConflict, "Round is not eligible to close yet")
		return
	}

	err = h.store.CloseRound(sess.ID)
	if errors.Is(err, store.ErrStaleTransition) {
		// Another close won the race; same outcome either way.
		middleware.JSONResponse(w, http.StatusOK, models.CloseRoundResponse{
			Closed:  false,
			Message: "Round already closed",
		})
		return
	}
	if err != nil {
		slog.Error("failed to close round", "error", err, "session_id", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close round")
		return
	}

	slog.Info("round closed", "session_id", sess.ID, "round_id", round.ID, "votes", len(votes))

	sess.Status = models.StatusFinished
	notifySession(h.bus, sess)

	middleware.JSONResponse(w, http.StatusOK, models.CloseRoundResponse{
		Closed:  true,
		Message: "Round closed",
	})
}

// notifyVotes pushes the running round tally to subscribers.
func (h *RoundHandler) notifyVotes(sess models.Session, roundID string) {
	votes, err := h.store.VotesForRound(roundID)
	if err != nil {
		slog.Error("failed to load votes for event", "error", err)
		return
	}
	roster, err := h.store.PlayersBySession(sess.Code)
	if err != nil {
		slog.Error("failed to load roster for event", "error", err)
		return
	}

	tally := models.TallyResponse{
		Entries:    game.Tally(votes, roster),
		VoteCount:  len(votes),
		RosterSize: len(roster),
	}
	data, err := jsonMarshal(tally)
	if err != nil {
		slog.Error("failed to marshal tally event", "error", err)
		return
	}
	h.bus.Broadcast(sess.Code, events.EventVotes, data)
}

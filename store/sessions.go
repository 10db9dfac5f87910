// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"strings"

	"github.com/danielhkuo/hall-of-shame/models"
)

// CreateSession inserts a new session. Returns ErrCodeTaken when the room
// code collides with a live session, so the caller can regenerate and
// retry.
func (s *Store) CreateSession(sess models.Session) error {
	_, err := s.db.Exec(`
		INSERT INTO session (id, code, host_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sess.ID, sess.Code, sess.HostID, sess.Status, sess.CreatedAt)

	if isUniqueViolation(err) {
		return ErrCodeTaken
	}
	if err != nil {
		return wrap("insert session", err)
	}
	return nil
}

// SessionByCode looks a session up by room code, case-insensitively.
func (s *Store) SessionByCode(code string) (models.Session, error) {
	var sess models.Session
	err := s.db.QueryRow(`
		SELECT id, code, host_id, status, current_round_id, round_end_time,
		       winner_id, winner_index, created_at
		FROM session
		WHERE code = $1
	`, strings.ToUpper(code)).Scan(
		&sess.ID, &sess.Code, &sess.HostID, &sess.Status,
		&sess.CurrentRoundID, &sess.RoundEndTime,
		&sess.WinnerID, &sess.WinnerIndex, &sess.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, wrap("query session", err)
	}
	return sess, nil
}

// StartRound creates a round and moves the session into VOTING in one
// transaction. The status update is a compare-and-set against fromStatus;
// a concurrent transition makes this fail with ErrStaleTransition and
// nothing is written.
func (s *Store) StartRound(sessionID, fromStatus string, round models.Round) error {
	tx, err := s.db.Begin()
	if err != nil {
		return wrap("begin", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO round (id, session_code, created_at, end_time)
		VALUES ($1, $2, $3, $4)
	`, round.ID, round.SessionCode, round.CreatedAt, round.EndTime)
	if err != nil {
		return wrap("insert round", err)
	}

	res, err := tx.Exec(`
		UPDATE session
		SET status = $1, current_round_id = $2, round_end_time = $3
		WHERE id = $4 AND status = $5
	`, models.StatusVoting, round.ID, round.EndTime, sessionID, fromStatus)
	if err != nil {
		return wrap("update session", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleTransition
	}

	return tx.Commit()
}

// CloseRound moves the session from VOTING to FINISHED. The round row
// itself is immutable; "closed" is a property of the session status.
func (s *Store) CloseRound(sessionID string) error {
	res, err := s.db.Exec(`
		UPDATE session
		SET status = $1
		WHERE id = $2 AND status = $3
	`, models.StatusFinished, sessionID, models.StatusVoting)
	if err != nil {
		return wrap("close round", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleTransition
	}
	return nil
}

// EndSession moves the session from FINISHED to ENDED, clears the current
// round pointer, and persists the verdict in the same compare-and-set
// write. winnerID/winnerIndex are nil when no winner was crowned;
// winnerIndex is only set when the winner came from a tie-break draw.
func (s *Store) EndSession(sessionID string, winnerID *string, winnerIndex *int) error {
	res, err := s.db.Exec(`
		UPDATE session
		SET status = $1, current_round_id = NULL, round_end_time = NULL,
		    winner_id = $2, winner_index = $3
		WHERE id = $4 AND status = $5
	`, models.StatusEnded, winnerID, winnerIndex, sessionID, models.StatusFinished)
	if err != nil {
		return wrap("end session", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleTransition
	}
	return nil
}

// UpsertPlayer adds a player to a roster, or refreshes an existing identity
// token. Rejoining the same session keeps the original joined_at so roster
// order stays stable; switching sessions resets it.
func (s *Store) UpsertPlayer(p models.Player) error {
	_, err := s.db.Exec(`
		INSERT INTO player (id, session_code, nickname, joined_at, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			nickname = excluded.nickname,
			active = excluded.active,
			joined_at = CASE
				WHEN player.session_code = excluded.session_code THEN player.joined_at
				ELSE excluded.joined_at
			END,
			session_code = excluded.session_code
	`, p.ID, p.SessionCode, p.Nickname, p.JoinedAt, p.Active)
	if err != nil {
		return wrap("upsert player", err)
	}
	return nil
}

// PlayersBySession returns the roster in join order.
func (s *Store) PlayersBySession(code string) ([]models.Player, error) {
	rows, err := s.db.Query(`
		SELECT id, session_code, nickname, joined_at, active
		FROM player
		WHERE session_code = $1
		ORDER BY joined_at, id
	`, strings.ToUpper(code))
	if err != nil {
		return nil, wrap("query players", err)
	}
	defer rows.Close()

	players := []models.Player{}
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.SessionCode, &p.Nickname, &p.JoinedAt, &p.Active); err != nil {
			return nil, wrap("scan player", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// ActivePlayer reports whether playerID is an active roster member of the
// session identified by code.
func (s *Store) ActivePlayer(code, playerID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM player
			WHERE id = $1 AND session_code = $2 AND active
		)
	`, playerID, strings.ToUpper(code)).Scan(&exists)
	if err != nil {
		return false, wrap("query player", err)
	}
	return exists, nil
}

// RoundByID fetches a round. Closed rounds stay addressable for historical
// tallies.
func (s *Store) RoundByID(id string) (models.Round, error) {
	var r models.Round
	err := s.db.QueryRow(`
		SELECT id, session_code, created_at, end_time
		FROM round
		WHERE id = $1
	`, id).Scan(&r.ID, &r.SessionCode, &r.CreatedAt, &r.EndTime)

	if err == sql.ErrNoRows {
		return models.Round{}, ErrRoundNotFound
	}
	if err != nil {
		return models.Round{}, wrap("query round", err)
	}
	return r, nil
}

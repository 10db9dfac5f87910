// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"strings"

	"github.com/danielhkuo/hall-of-shame/models"
)

// RecordVote appends one vote. The (round_id, voter_id) primary key is the
// dedup identity: a second write for the same pair affects zero rows and
// reports ErrDuplicateVote, so the first write wins and a network retry of
// the same submission cannot create a second vote. Targets must be active
// roster members; self-votes are allowed.
func (s *Store) RecordVote(v models.Vote) error {
	ok, err := s.ActivePlayer(v.SessionCode, v.TargetID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTarget
	}

	res, err := s.db.Exec(`
		INSERT INTO vote (round_id, voter_id, target_id, reason, session_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (round_id, voter_id) DO NOTHING
	`, v.RoundID, v.VoterID, v.TargetID, v.Reason, v.SessionCode, v.CreatedAt)
	if err != nil {
		return wrap("insert vote", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDuplicateVote
	}
	return nil
}

// VotesForRound returns every vote of one round, unordered.
func (s *Store) VotesForRound(roundID string) ([]models.Vote, error) {
	return s.queryVotes(`
		SELECT round_id, voter_id, target_id, reason, session_code, created_at
		FROM vote
		WHERE round_id = $1
	`, roundID)
}

// VotesForSession returns every vote across all rounds of a session.
func (s *Store) VotesForSession(code string) ([]models.Vote, error) {
	return s.queryVotes(`
		SELECT round_id, voter_id, target_id, reason, session_code, created_at
		FROM vote
		WHERE session_code = $1
	`, strings.ToUpper(code))
}

func (s *Store) queryVotes(query string, arg string) ([]models.Vote, error) {
	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, wrap("query votes", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.RoundID, &v.VoterID, &v.TargetID, &v.Reason, &v.SessionCode, &v.CreatedAt); err != nil {
			return nil, wrap("scan vote", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

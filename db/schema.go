// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The SQL stays portable between sqlite and postgres: no NOW() defaults
// (timestamps are always written explicitly) and no JSONB.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Sessions
CREATE TABLE IF NOT EXISTS session (
    id TEXT PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    host_id TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'LOBBY' CHECK (status IN ('LOBBY', 'VOTING', 'FINISHED', 'ENDED')),
    current_round_id TEXT,
    round_end_time TIMESTAMP,
    winner_id TEXT,
    winner_index INTEGER,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_code ON session(code);
CREATE INDEX IF NOT EXISTS idx_session_status ON session(status);

-- Players
CREATE TABLE IF NOT EXISTS player (
    id TEXT PRIMARY KEY,
    session_code TEXT NOT NULL,
    nickname TEXT NOT NULL,
    joined_at TIMESTAMP NOT NULL,
    active BOOLEAN NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_player_session_code ON player(session_code);

-- Rounds
CREATE TABLE IF NOT EXISTS round (
    id TEXT PRIMARY KEY,
    session_code TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    end_time TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_round_session_code ON round(session_code);

-- Votes: the composite key is the dedup identity, one vote per (round, voter)
CREATE TABLE IF NOT EXISTS vote (
    round_id TEXT NOT NULL,
    voter_id TEXT NOT NULL,
    target_id TEXT NOT NULL,
    reason TEXT NOT NULL,
    session_code TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (round_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_session_code ON vote(session_code);
`

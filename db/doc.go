// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db creates the database schema.

# Tables

  - session: lifecycle status, current round pointer, persisted verdict
  - player: roster membership keyed by stable player id
  - round: timed voting periods, addressable after close
  - vote: PRIMARY KEY (round_id, voter_id) enforces one vote per voter
    per round at the storage layer

# Portability

The schema runs unchanged on sqlite (modernc.org/sqlite) and postgres
(lib/pq): timestamps are inserted explicitly rather than defaulted with
NOW(), and payloads stay in plain columns.

# Usage

	if err := db.CreateSchema(dbConn); err != nil {
		// handle error
	}

CreateSchema is idempotent (IF NOT EXISTS everywhere).
*/
package db

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence layer the controllers read and write
through: sessions, players, rounds, and the vote store.

# Compare-and-set transitions

Every status write is guarded by the status the caller observed:

	UPDATE session SET status = ... WHERE id = $1 AND status = $from

Zero rows affected means another writer got there first; the caller gets
ErrStaleTransition and decides whether that is a conflict (409) or an
idempotent no-op (a round that is already closed).

# Vote dedup

vote's PRIMARY KEY (round_id, voter_id) plus ON CONFLICT DO NOTHING gives
exactly-once voting with a first-write-wins policy. RecordVote reports
ErrDuplicateVote on the losing write.

# Errors

Sentinel errors (ErrSessionNotFound, ErrRoundNotFound, ErrDuplicateVote,
ErrInvalidTarget, ErrStaleTransition, ErrCodeTaken) are domain outcomes;
anything else is a transient storage failure callers log and surface as a
500.
*/
package store

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package game holds the pure voting engine: no I/O, no clock reads, no
database. Handlers feed it data loaded from storage and write back what it
decides.

# Tallying

	entries := game.Tally(votes, roster)
	outcome := game.DetectTie(entries)

Tally produces one entry per roster member (zero counts included), count
descending, roster join order on equal counts. DetectTie returns every
entry sharing a contested maximum, so ties wider than two-way are handled.

# Lifecycle

The session state machine is an explicit transition table:

	LOBBY    --open_round-->  VOTING
	VOTING   --close_round--> FINISHED
	FINISHED --open_round-->  VOTING
	FINISHED --end_session--> ENDED (terminal)

NextStatus rejects every pair not listed. CloseEligible decides whether a
round may close (all active players voted, or the round's end time passed).

# Tie-breaking

ResolveTie draws one uniform index among tied candidates. The caller is
responsible for performing the draw exactly once and persisting the result;
the draw itself is intentionally not reproducible.
*/
package game

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

Internal data structures:

  - Session: one game instance, identified by a 4-char room code
  - Player: roster member with a stable identity token
  - Round: one timed voting period within a session
  - Vote: one (round, voter) ballot naming a target and a reason
  - TallyEntry: per-player vote count within a scope (round or session)
  - Verdict: persisted final outcome of an ended session

# Constants

Session status values:

	StatusLobby    = "LOBBY"
	StatusVoting   = "VOTING"
	StatusFinished = "FINISHED"
	StatusEnded    = "ENDED"

RoundDuration fixes every round at 60 seconds. VoteReasons is the closed
set of 7 reasons a vote may carry; ValidReason checks membership.

# Request Types

Types for parsing incoming JSON:

  - CreateSessionRequest: nickname, optional player_id
  - JoinSessionRequest: nickname, optional player_id
  - SubmitVoteRequest: target_id, reason

# Response Types

Types for JSON responses:

  - CreateSessionResponse / JoinSessionResponse: session, player
  - SessionView: session plus humanized roster
  - OpenRoundResponse, CloseRoundResponse, SubmitVoteResponse
  - TallyResponse: entries, vote_count, roster_size
  - Verdict: decided, winner, tie_broken, candidates, standings
  - ErrorResponse: error, message
*/
package models

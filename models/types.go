// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Session status constants
const (
	StatusLobby    = "LOBBY"
	StatusVoting   = "VOTING"
	StatusFinished = "FINISHED"
	StatusEnded    = "ENDED"
)

// RoundDuration is the fixed length of every voting round.
const RoundDuration = 60 * time.Second

// VoteReasons is the closed set of reasons a vote may carry.
// Anything else is rejected before it reaches storage.
var VoteReasons = []string{
	"Missed Sitter",
	"Reckless",
	"Ball Hog",
	"Sleeping",
	"Own Goal",
	"Toxic",
	"Other",
}

// ValidReason reports whether reason is one of the allowed vote reasons.
func ValidReason(reason string) bool {
	for _, r := range VoteReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Request types

type CreateSessionRequest struct {
	Nickname string `json:"nickname"`
	PlayerID string `json:"player_id,omitempty"` // reuse a stable identity token; generated when empty
}

type JoinSessionRequest struct {
	Nickname string `json:"nickname"`
	PlayerID string `json:"player_id,omitempty"`
}

type SubmitVoteRequest struct {
	TargetID string `json:"target_id"`
	Reason   string `json:"reason"`
}

// Response types

type CreateSessionResponse struct {
	Session Session `json:"session"`
	Player  Player  `json:"player"`
}

type JoinSessionResponse struct {
	Session Session `json:"session"`
	Player  Player  `json:"player"`
}

type SubmitVoteResponse struct {
	Message string `json:"message"`
}

type OpenRoundResponse struct {
	Round Round `json:"round"`
}

type CloseRoundResponse struct {
	Closed  bool   `json:"closed"`
	Message string `json:"message"`
}

type TallyResponse struct {
	Entries    []TallyEntry `json:"entries"`
	VoteCount  int          `json:"vote_count"`
	RosterSize int          `json:"roster_size"`
}

// Domain types

type Session struct {
	ID             string     `json:"id"`
	Code           string     `json:"code"`
	HostID         string     `json:"host_id"`
	Status         string     `json:"status"`
	CurrentRoundID *string    `json:"current_round_id,omitempty"`
	RoundEndTime   *time.Time `json:"round_end_time,omitempty"`
	WinnerID       *string    `json:"-"` // exposed through the verdict, not the session view
	WinnerIndex    *int       `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
}

type Player struct {
	ID          string    `json:"id"`
	Nickname    string    `json:"nickname"`
	SessionCode string    `json:"session_code"`
	JoinedAt    time.Time `json:"joined_at"`
	Active      bool      `json:"active"`
}

type Round struct {
	ID          string    `json:"id"`
	SessionCode string    `json:"session_code"`
	CreatedAt   time.Time `json:"created_at"`
	EndTime     time.Time `json:"end_time"`
}

type Vote struct {
	RoundID     string    `json:"round_id"`
	VoterID     string    `json:"voter_id"`
	TargetID    string    `json:"target_id"`
	Reason      string    `json:"reason"`
	SessionCode string    `json:"session_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// TallyEntry is one roster member's count within a tally scope.
type TallyEntry struct {
	PlayerID  string `json:"player_id"`
	Nickname  string `json:"nickname"`
	Count     int    `json:"count"`
	TopReason string `json:"top_reason,omitempty"`
}

// RosterEntry is a roster member as shown in the session view.
type RosterEntry struct {
	Player
	Joined string `json:"joined"` // humanized, e.g. "2 minutes ago"
	IsHost bool   `json:"is_host"`
}

type SessionView struct {
	Session Session       `json:"session"`
	Roster  []RosterEntry `json:"roster"`
}

// Verdict is the final, persisted outcome of an ended session.
type Verdict struct {
	Decided     bool         `json:"decided"`              // false means nobody collected a single vote
	Winner      *TallyEntry  `json:"winner,omitempty"`     // the crowned culprit, when decided
	TieBroken   bool         `json:"tie_broken"`           // true when the winner came from a random draw
	WinnerIndex int          `json:"winner_index"`         // index into Candidates; -1 unless tie-broken
	Candidates  []TallyEntry `json:"candidates,omitempty"` // the tied entries the draw chose among
	Standings   []TallyEntry `json:"standings"`            // full session-scope tally
	Message     string       `json:"message,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

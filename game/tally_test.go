// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"testing"
	"time"

	"github.com/danielhkuo/hall-of-shame/models"
)

func player(id, nickname string) models.Player {
	return models.Player{ID: id, Nickname: nickname, Active: true}
}

func vote(voterID, targetID, reason string) models.Vote {
	return models.Vote{RoundID: "r1", VoterID: voterID, TargetID: targetID, Reason: reason}
}

func TestTally(t *testing.T) {
	roster := []models.Player{
		player("alice", "Alice"),
		player("bob", "Bob"),
		player("carol", "Carol"),
	}

	tests := []struct {
		name       string
		votes      []models.Vote
		wantOrder  []string
		wantCounts []int
	}{
		{
			name: "clear leader",
			votes: []models.Vote{
				vote("alice", "bob", "Reckless"),
				vote("carol", "bob", "Sleeping"),
				vote("bob", "alice", "Toxic"),
			},
			wantOrder:  []string{"bob", "alice", "carol"},
			wantCounts: []int{2, 1, 0},
		},
		{
			name:       "no votes keeps roster order",
			votes:      nil,
			wantOrder:  []string{"alice", "bob", "carol"},
			wantCounts: []int{0, 0, 0},
		},
		{
			name: "equal counts keep join order",
			votes: []models.Vote{
				vote("carol", "bob", "Reckless"),
				vote("bob", "alice", "Own Goal"),
			},
			wantOrder:  []string{"alice", "bob", "carol"},
			wantCounts: []int{1, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Tally(tt.votes, roster)

			if len(entries) != len(roster) {
				t.Fatalf("Expected %d entries, got %d", len(roster), len(entries))
			}
			for i, e := range entries {
				if e.PlayerID != tt.wantOrder[i] {
					t.Errorf("Entry %d: expected player %s, got %s", i, tt.wantOrder[i], e.PlayerID)
				}
				if e.Count != tt.wantCounts[i] {
					t.Errorf("Entry %d: expected count %d, got %d", i, tt.wantCounts[i], e.Count)
				}
			}
		})
	}
}

func TestTallyIgnoresNonRosterTargets(t *testing.T) {
	roster := []models.Player{player("alice", "Alice")}
	votes := []models.Vote{vote("alice", "ghost", "Other")}

	entries := Tally(votes, roster)

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Count != 0 {
		t.Errorf("Expected count 0 for alice, got %d", entries[0].Count)
	}
}

func TestDetectTie(t *testing.T) {
	tests := []struct {
		name           string
		entries        []models.TallyEntry
		wantTied       bool
		wantCandidates []string
	}{
		{
			name: "clear leader",
			entries: []models.TallyEntry{
				{PlayerID: "alice", Count: 3},
				{PlayerID: "bob", Count: 1},
			},
			wantTied: false,
		},
		{
			name: "two-way tie ignores zero entries",
			entries: []models.TallyEntry{
				{PlayerID: "alice", Count: 2},
				{PlayerID: "bob", Count: 2},
				{PlayerID: "carol", Count: 0},
			},
			wantTied:       true,
			wantCandidates: []string{"alice", "bob"},
		},
		{
			name: "three-way tie includes all candidates",
			entries: []models.TallyEntry{
				{PlayerID: "alice", Count: 1},
				{PlayerID: "bob", Count: 1},
				{PlayerID: "carol", Count: 1},
			},
			wantTied:       true,
			wantCandidates: []string{"alice", "bob", "carol"},
		},
		{
			name: "all zero is not a tie",
			entries: []models.TallyEntry{
				{PlayerID: "alice", Count: 0},
				{PlayerID: "bob", Count: 0},
			},
			wantTied: false,
		},
		{
			name: "single entry is not a tie",
			entries: []models.TallyEntry{
				{PlayerID: "alice", Count: 5},
			},
			wantTied: false,
		},
		{
			name:     "empty tally",
			entries:  nil,
			wantTied: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := DetectTie(tt.entries)

			if outcome.Tied != tt.wantTied {
				t.Fatalf("Expected tied=%v, got %v", tt.wantTied, outcome.Tied)
			}
			if !tt.wantTied {
				if outcome.Candidates != nil {
					t.Errorf("Expected no candidates, got %v", outcome.Candidates)
				}
				return
			}
			if len(outcome.Candidates) != len(tt.wantCandidates) {
				t.Fatalf("Expected %d candidates, got %d", len(tt.wantCandidates), len(outcome.Candidates))
			}
			for i, id := range tt.wantCandidates {
				if outcome.Candidates[i].PlayerID != id {
					t.Errorf("Candidate %d: expected %s, got %s", i, id, outcome.Candidates[i].PlayerID)
				}
			}
		})
	}
}

func TestTopReason(t *testing.T) {
	votes := []models.Vote{
		vote("alice", "bob", "Sleeping"),
		vote("carol", "bob", "Sleeping"),
		vote("dave", "bob", "Reckless"),
		vote("bob", "alice", "Toxic"),
	}

	if got := TopReason(votes, "bob"); got != "Sleeping" {
		t.Errorf("Expected 'Sleeping', got '%s'", got)
	}
	if got := TopReason(votes, "alice"); got != "Toxic" {
		t.Errorf("Expected 'Toxic', got '%s'", got)
	}
	if got := TopReason(votes, "carol"); got != "" {
		t.Errorf("Expected empty reason for unvoted player, got '%s'", got)
	}
}

func TestTopReasonTieIsStable(t *testing.T) {
	// "Reckless" precedes "Sleeping" in the reason list, so an even split
	// resolves to it every time.
	votes := []models.Vote{
		vote("alice", "bob", "Sleeping"),
		vote("carol", "bob", "Reckless"),
	}

	for i := 0; i < 10; i++ {
		if got := TopReason(votes, "bob"); got != "Reckless" {
			t.Fatalf("Expected 'Reckless', got '%s'", got)
		}
	}
}

func TestAllVoted(t *testing.T) {
	roster := []models.Player{
		player("alice", "Alice"),
		player("bob", "Bob"),
	}

	if AllVoted([]models.Vote{vote("alice", "bob", "Other")}, roster) {
		t.Error("One of two voters should not count as all-voted")
	}

	votes := []models.Vote{
		vote("alice", "bob", "Other"),
		vote("bob", "alice", "Other"),
	}
	if !AllVoted(votes, roster) {
		t.Error("Expected all-voted when every roster member voted")
	}

	if AllVoted(nil, nil) {
		t.Error("Empty roster should never be all-voted")
	}
}

func TestAllVotedSkipsInactivePlayers(t *testing.T) {
	roster := []models.Player{
		player("alice", "Alice"),
		player("bob", "Bob"),
		{ID: "gone", Nickname: "Gone", Active: false},
	}

	votes := []models.Vote{
		vote("alice", "bob", "Other"),
		vote("bob", "alice", "Other"),
	}
	if !AllVoted(votes, roster) {
		t.Error("Inactive players should not block all-voted")
	}
}

func TestCloseEligible(t *testing.T) {
	now := time.Now()
	round := models.Round{ID: "r1", EndTime: now.Add(30 * time.Second)}
	roster := []models.Player{
		player("alice", "Alice"),
		player("bob", "Bob"),
	}

	t.Run("not eligible mid-round with missing votes", func(t *testing.T) {
		votes := []models.Vote{vote("alice", "bob", "Other")}
		if CloseEligible(round, roster, votes, now) {
			t.Error("Round should not be closable yet")
		}
	})

	t.Run("eligible when everyone voted", func(t *testing.T) {
		votes := []models.Vote{
			vote("alice", "bob", "Other"),
			vote("bob", "alice", "Other"),
		}
		if !CloseEligible(round, roster, votes, now) {
			t.Error("Round should close when everyone voted")
		}
	})

	t.Run("eligible after the end time with zero votes", func(t *testing.T) {
		if !CloseEligible(round, roster, nil, round.EndTime) {
			t.Error("Round should close at its end time regardless of votes")
		}
		if !CloseEligible(round, roster, nil, round.EndTime.Add(time.Minute)) {
			t.Error("Round should close after its end time")
		}
	})
}

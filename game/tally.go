// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"sort"
	"time"

	"github.com/danielhkuo/hall-of-shame/models"
)

// Tally counts votes per roster member for one scope (a round or a whole
// session). Every roster member appears, including zero-count ones. Entries
// are sorted by count descending; equal counts keep the roster's join order,
// which stabilizes display but carries no game meaning.
func Tally(votes []models.Vote, roster []models.Player) []models.TallyEntry {
	counts := make(map[string]int, len(roster))
	for _, v := range votes {
		counts[v.TargetID]++
	}

	entries := make([]models.TallyEntry, 0, len(roster))
	for _, p := range roster {
		entries = append(entries, models.TallyEntry{
			PlayerID: p.ID,
			Nickname: p.Nickname,
			Count:    counts[p.ID],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return entries
}

// TieOutcome reports whether the top of a ranked tally is contested.
type TieOutcome struct {
	Tied       bool
	Candidates []models.TallyEntry
}

// DetectTie inspects a ranked tally (as produced by Tally) and returns the
// full set of entries sharing the maximum count when that maximum is
// contested. Fewer than 2 entries, a zero top count, or a clear leader all
// mean no tie. Three-way and wider ties are included whole, not just the
// top two.
func DetectTie(results []models.TallyEntry) TieOutcome {
	if len(results) < 2 {
		return TieOutcome{}
	}
	top := results[0].Count
	if top == 0 || results[1].Count != top {
		return TieOutcome{}
	}

	var candidates []models.TallyEntry
	for _, e := range results {
		if e.Count == top {
			candidates = append(candidates, e)
		}
	}
	return TieOutcome{Tied: true, Candidates: candidates}
}

// TopReason returns the most common reason among votes cast against
// targetID, or "" when the target received none. Reason ties resolve in
// models.VoteReasons order so the answer is stable.
func TopReason(votes []models.Vote, targetID string) string {
	counts := make(map[string]int)
	for _, v := range votes {
		if v.TargetID == targetID {
			counts[v.Reason]++
		}
	}

	best := ""
	bestCount := 0
	for _, reason := range models.VoteReasons {
		if counts[reason] > bestCount {
			best = reason
			bestCount = counts[reason]
		}
	}
	return best
}

// AllVoted reports whether every active roster member has a vote in the
// given set. An empty roster never counts as all-voted.
func AllVoted(votes []models.Vote, roster []models.Player) bool {
	active := 0
	for _, p := range roster {
		if p.Active {
			active++
		}
	}
	if active == 0 {
		return false
	}

	voters := make(map[string]struct{}, len(votes))
	for _, v := range votes {
		voters[v.VoterID] = struct{}{}
	}
	return len(voters) >= active
}

// CloseEligible reports whether a round may close right now: either every
// active player has voted, or the wall clock reached the round's end time.
func CloseEligible(round models.Round, roster []models.Player, votes []models.Vote, now time.Time) bool {
	if AllVoted(votes, roster) {
		return true
	}
	return !now.Before(round.EndTime)
}

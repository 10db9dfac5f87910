// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"math/rand"
	"time"

	"github.com/danielhkuo/hall-of-shame/models"
)

// ResolveTie draws one winner index uniformly from the tied candidates.
// The draw must happen exactly once, by the authoritative party, and the
// chosen index persisted; observers read the stored outcome instead of
// re-drawing. Returns -1 for an empty candidate list.
func ResolveTie(candidates []models.TallyEntry) int {
	if len(candidates) == 0 {
		return -1
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return rng.Intn(len(candidates))
}

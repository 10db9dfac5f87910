// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"errors"

	"github.com/danielhkuo/hall-of-shame/models"
)

// Event names a session lifecycle trigger.
type Event string

const (
	EventOpenRound  Event = "open_round"
	EventCloseRound Event = "close_round"
	EventEndSession Event = "end_session"
)

// ErrInvalidTransition means the (status, event) pair is not in the
// transition table.
var ErrInvalidTransition = errors.New("invalid session transition")

// transitions enumerates every allowed (from, event) -> to pair. Anything
// absent is rejected. ENDED is terminal.
var transitions = map[string]map[Event]string{
	models.StatusLobby: {
		EventOpenRound: models.StatusVoting,
	},
	models.StatusVoting: {
		EventCloseRound: models.StatusFinished,
	},
	models.StatusFinished: {
		EventOpenRound:  models.StatusVoting,
		EventEndSession: models.StatusEnded,
	},
}

// NextStatus returns the status a session moves to when event fires in the
// given status, or ErrInvalidTransition.
func NextStatus(from string, event Event) (string, error) {
	to, ok := transitions[from][event]
	if !ok {
		return "", ErrInvalidTransition
	}
	return to, nil
}

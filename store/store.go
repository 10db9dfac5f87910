// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Domain errors. Handlers map these to HTTP statuses; anything else coming
// out of this package is a transient storage failure.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrRoundNotFound   = errors.New("round not found")
	ErrDuplicateVote   = errors.New("voter already voted this round")
	ErrInvalidTarget   = errors.New("vote target is not an active roster member")
	ErrStaleTransition = errors.New("session status changed underneath the update")
	ErrCodeTaken       = errors.New("room code already in use")
)

// Store wraps the database handle with the application's queries.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// isUniqueViolation matches the unique-constraint error text of both
// supported drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// wrap adds context without hiding the sentinel errors above.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

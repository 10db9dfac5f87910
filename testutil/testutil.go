// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/hall-of-shame/auth"
	"github.com/danielhkuo/hall-of-shame/cliparse"
	"github.com/danielhkuo/hall-of-shame/db"
	"github.com/danielhkuo/hall-of-shame/models"
)

var dbCounter atomic.Int64

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Each call gets its own database; it is closed via t.Cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// A unique shared-cache name keeps the database alive across the
	// pool's connections for the duration of the test.
	name := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	conn, err := sql.Open("sqlite", name)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// sqlite allows one writer; a single connection avoids lock errors.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3419,
		DatabaseURL:  "file:test?mode=memory",
		DatabaseType: "sqlite",
		BaseURL:      "http://localhost:3419",
	}
}

// CreateTestSession creates a session with a host player and returns the
// session and host. status should be one of the models.Status* constants.
func CreateTestSession(t *testing.T, conn *sql.DB, status string) (models.Session, models.Player) {
	t.Helper()

	sessionID, _ := auth.GenerateID(16)
	hostID := auth.NewPlayerID()
	code := auth.GenerateRoomCode()
	now := time.Now()

	_, err := conn.Exec(`
		INSERT INTO session (id, code, host_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sessionID, code, hostID, status, now)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	host := AddTestPlayer(t, conn, code, hostID, "Host")

	return models.Session{
		ID:        sessionID,
		Code:      code,
		HostID:    hostID,
		Status:    status,
		CreatedAt: now,
	}, host
}

// AddTestPlayer inserts an active roster member.
func AddTestPlayer(t *testing.T, conn *sql.DB, code, playerID, nickname string) models.Player {
	t.Helper()

	now := time.Now()
	_, err := conn.Exec(`
		INSERT INTO player (id, session_code, nickname, joined_at, active)
		VALUES ($1, $2, $3, $4, $5)
	`, playerID, code, nickname, now, true)
	if err != nil {
		t.Fatalf("Failed to create test player: %v", err)
	}

	return models.Player{
		ID:          playerID,
		Nickname:    nickname,
		SessionCode: code,
		JoinedAt:    now,
		Active:      true,
	}
}

// OpenTestRound inserts a round and moves the session into VOTING.
func OpenTestRound(t *testing.T, conn *sql.DB, sess models.Session) models.Round {
	t.Helper()

	roundID, _ := auth.GenerateID(16)
	now := time.Now()
	round := models.Round{
		ID:          roundID,
		SessionCode: sess.Code,
		CreatedAt:   now,
		EndTime:     now.Add(models.RoundDuration),
	}

	_, err := conn.Exec(`
		INSERT INTO round (id, session_code, created_at, end_time)
		VALUES ($1, $2, $3, $4)
	`, round.ID, round.SessionCode, round.CreatedAt, round.EndTime)
	if err != nil {
		t.Fatalf("Failed to create test round: %v", err)
	}

	_, err = conn.Exec(`
		UPDATE session SET status = $1, current_round_id = $2, round_end_time = $3 WHERE id = $4
	`, models.StatusVoting, round.ID, round.EndTime, sess.ID)
	if err != nil {
		t.Fatalf("Failed to open test round: %v", err)
	}

	return round
}

// CastTestVote inserts a vote directly, bypassing the handler.
func CastTestVote(t *testing.T, conn *sql.DB, roundID, code, voterID, targetID, reason string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (round_id, voter_id, target_id, reason, session_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, roundID, voterID, targetID, reason, code, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

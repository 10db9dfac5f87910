package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/hall-of-shame/events"
	"github.com/danielhkuo/hall-of-shame/models"
	"github.com/danielhkuo/hall-of-shame/store"
	"github.com/danielhkuo/hall-of-shame/testutil"
)

func TestCreateSession(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn)
	handler := NewSessionHandler(st, testutil.GetTestConfig(), events.NewBroadcaster())

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CreateSessionResponse)
	}{
		{
			name:           "valid session creation",
			requestBody:    models.CreateSessionRequest{Nickname: "Alice"},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreateSessionResponse) {
				if len(resp.Session.Code) != 4 {
					t.Errorf("Expected 4-char room code, got '%s'", resp.Session.Code)
				}
				if resp.Session.Status != models.StatusLobby {
					t.Errorf("Expected status LOBBY, got %s", resp.Session.Status)
				}
				if resp.Player.ID == "" {
					t.Error("Expected a generated player ID")
				}
				if resp.Session.HostID != resp.Player.ID {
					t.Error("Expected the creator to be the host")
				}

				// Verify the host landed on the roster
				var exists bool
				err := conn.QueryRow(`
					SELECT EXISTS(
						SELECT 1 FROM player
						WHERE id = $1 AND session_code = $2 AND active
					)
				`, resp.Player.ID, resp.Session.Code).Scan(&exists)
				if err != nil {
					t.Fatalf("Failed to check roster: %v", err)
				}
				if !exists {
					t.Error("Host was not added to the roster")
				}
			},
		},
		{
			name: "reused player identity",
			requestBody: models.CreateSessionRequest{
				Nickname: "Alice",
				PlayerID: "stable-token-1",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreateSessionResponse) {
				if resp.Player.ID != "stable-token-1" {
					t.Errorf("Expected supplied player ID to be kept, got '%s'", resp.Player.ID)
				}
			},
		},
		{
			name:           "missing nickname",
			requestBody:    models.CreateSessionRequest{Nickname: ""},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "nickname too long",
			requestBody:    models.CreateSessionRequest{Nickname: "ThisNicknameIsWayTooLong"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/sessions", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated && tt.checkResponse != nil {
				var resp models.CreateSessionResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestJoinSession(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn)
	bus := events.NewBroadcaster()
	handler := NewSessionHandler(st, testutil.GetTestConfig(), bus)

	sess, _ := testutil.CreateTestSession(t, conn, models.StatusLobby)

	t.Run("valid join", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/sessions/"+sess.Code+"/join",
			models.JoinSessionRequest{Nickname: "Bob"}, nil)
		req.SetPathValue("code", sess.Code)
		w := httptest.NewRecorder()

		handler.Join(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.JoinSessionResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Player.ID == "" {
			t.Error("Expected a generated player ID")
		}
		if resp.Session.Code != sess.Code {
			t.Errorf("Expected session code %s, got %s", sess.Code, resp.Session.Code)
		}
	})

	t.Run("lowercase code matches", func(t *testing.T) {
		lower := strings.ToLower(sess.Code)
		req := testutil.MakeRequest("POST", "/sessions/"+lower+"/join",
			models.JoinSessionRequest{Nickname: "Carol"}, nil)
		req.SetPathValue("code", lower)
		w := httptest.NewRecorder()

		handler.Join(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("unknown code", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/sessions/ZZZZ/join",
			models.JoinSessionRequest{Nickname: "Bob"}, nil)
		req.SetPathValue("code", "ZZZZ")
		w := httptest.NewRecorder()

		handler.Join(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("invalid nickname", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/sessions/"+sess.Code+"/join",
			models.JoinSessionRequest{Nickname: ""}, nil)
		req.SetPathValue("code", sess.Code)
		w := httptest.NewRecorder()

		handler.Join(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("ended session rejects joins", func(t *testing.T) {
		ended, _ := testutil.CreateTestSession(t, conn, models.StatusEnded)

		req := testutil.MakeRequest("POST", "/sessions/"+ended.Code+"/join",
			models.JoinSessionRequest{Nickname: "TooLate"}, nil)
		req.SetPathValue("code", ended.Code)
		w := httptest.NewRecorder()

		handler.Join(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("rejoin keeps one roster entry", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/sessions/"+sess.Code+"/join",
			models.JoinSessionRequest{Nickname: "Dave", PlayerID: "dave-token"}, nil)
		req.SetPathValue("code", sess.Code)
		w := httptest.NewRecorder()
		handler.Join(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		// Same identity joins again with a new nickname
		req = testutil.MakeRequest("POST", "/sessions/"+sess.Code+"/join",
			models.JoinSessionRequest{Nickname: "David", PlayerID: "dave-token"}, nil)
		req.SetPathValue("code", sess.Code)
		w = httptest.NewRecorder()
		handler.Join(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var count int
		err := conn.QueryRow(`SELECT COUNT(*) FROM player WHERE id = 'dave-token'`).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to count players: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 roster entry after rejoin, got %d", count)
		}
	})
}

func TestGetSession(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn)
	handler := NewSessionHandler(st, testutil.GetTestConfig(), events.NewBroadcaster())

	sess, host := testutil.CreateTestSession(t, conn, models.StatusLobby)
	testutil.AddTestPlayer(t, conn, sess.Code, "p2", "Bob")

	req := testutil.MakeRequest("GET", "/sessions/"+sess.Code, nil, nil)
	req.SetPathValue("code", sess.Code)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SessionView
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Roster) != 2 {
		t.Fatalf("Expected 2 roster entries, got %d", len(resp.Roster))
	}
	for _, entry := range resp.Roster {
		if entry.ID == host.ID && !entry.IsHost {
			t.Error("Expected host to be flagged is_host")
		}
		if entry.ID != host.ID && entry.IsHost {
			t.Errorf("Player %s wrongly flagged as host", entry.ID)
		}
		if entry.Joined == "" {
			t.Error("Expected humanized join time")
		}
	}
}

func TestSessionQRCode(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn)
	handler := NewSessionHandler(st, testutil.GetTestConfig(), events.NewBroadcaster())

	sess, _ := testutil.CreateTestSession(t, conn, models.StatusLobby)

	req := testutil.MakeRequest("GET", "/sessions/"+sess.Code+"/qr", nil, nil)
	req.SetPathValue("code", sess.Code)
	w := httptest.NewRecorder()

	handler.QR(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected Content-Type image/png, got %s", ct)
	}
	body := w.Body.Bytes()
	if len(body) < 8 {
		t.Fatal("Expected PNG payload")
	}
	// PNG magic number
	if body[0] != 0x89 || string(body[1:4]) != "PNG" {
		t.Error("Response is not a PNG image")
	}
}

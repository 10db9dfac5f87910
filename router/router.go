// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/hall-of-shame/cliparse"
	"github.com/danielhkuo/hall-of-shame/events"
	"github.com/danielhkuo/hall-of-shame/handlers"
	"github.com/danielhkuo/hall-of-shame/middleware"
	"github.com/danielhkuo/hall-of-shame/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, bus *events.Broadcaster) *http.ServeMux {
	mux := http.NewServeMux()

	st := store.New(db)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(st, cfg, bus)
	roundHandler := handlers.NewRoundHandler(st, cfg, bus)
	resultsHandler := handlers.NewResultsHandler(st, cfg, bus)
	eventsHandler := handlers.NewEventsHandler(st, bus)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session lifecycle
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.Create))
	mux.HandleFunc("POST /sessions/{code}/join", middleware.WithLogging(sessionHandler.Join))
	mux.HandleFunc("GET /sessions/{code}", middleware.WithLogging(sessionHandler.Get))
	mux.HandleFunc("GET /sessions/{code}/qr", middleware.WithLogging(sessionHandler.QR))
	mux.HandleFunc("POST /sessions/{code}/end", middleware.WithLogging(resultsHandler.End))

	// Rounds and voting
	mux.HandleFunc("POST /sessions/{code}/rounds", middleware.WithLogging(roundHandler.Open))
	mux.HandleFunc("POST /sessions/{code}/rounds/close", middleware.WithLogging(roundHandler.Close))
	mux.HandleFunc("POST /sessions/{code}/votes", middleware.WithLogging(roundHandler.Vote))

	// Tallies and the final verdict
	mux.HandleFunc("GET /sessions/{code}/rounds/current/tally", middleware.WithLogging(resultsHandler.RoundTally))
	mux.HandleFunc("GET /sessions/{code}/tally", middleware.WithLogging(resultsHandler.SessionTally))
	mux.HandleFunc("GET /sessions/{code}/verdict", middleware.WithLogging(resultsHandler.Verdict))

	// Live updates
	mux.HandleFunc("GET /sessions/{code}/events", middleware.WithLogging(eventsHandler.Stream))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hall-of-shame API v1"))
	})

	return mux
}

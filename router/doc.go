// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Hall of Shame API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, bus)

# Endpoints

Health:

	GET /health

Session lifecycle:

	POST /sessions             - Create session (creator becomes host)
	POST /sessions/{code}/join - Join by room code
	GET  /sessions/{code}     - Session view with roster
	GET  /sessions/{code}/qr  - Join link as a PNG QR code
	POST /sessions/{code}/end - End session, crown the culprit (host)

Rounds and voting:

	POST /sessions/{code}/rounds       - Open a round (host)
	POST /sessions/{code}/rounds/close - Close the round (host)
	POST /sessions/{code}/votes        - Submit a vote

Tallies and verdict:

	GET /sessions/{code}/rounds/current/tally - Current round tally
	GET /sessions/{code}/tally                - Session-scope tally
	GET /sessions/{code}/verdict              - Final verdict (ended only)

Live updates:

	GET /sessions/{code}/events - Server-sent event stream

# Handler Initialization

The router creates handler instances with dependency injection:

	sessionHandler := handlers.NewSessionHandler(st, cfg, bus)
	roundHandler := handlers.NewRoundHandler(st, cfg, bus)
	resultsHandler := handlers.NewResultsHandler(st, cfg, bus)
	eventsHandler := handlers.NewEventsHandler(st, bus)

All handlers receive the store, configuration, and event broadcaster.
*/
package router

/*
Package handlers implements the HTTP handlers for the voting API.

# Handlers

  - SessionHandler: create a session, join by room code, fetch the
    session view, render a join QR code
  - RoundHandler: open a round, submit votes, close the round
  - ResultsHandler: round and session tallies, ending the session,
    reading the final verdict
  - EventsHandler: server-sent event stream of session changes

Handlers are plain structs wired with their dependencies at construction
time and registered on the router with Go 1.22 method patterns.

# Identity

The acting player is identified by the X-Player-ID header. Host-only
operations (opening and closing rounds, ending the session) compare it
against the session's host ID and reject everyone else with 403.

# Error responses

All errors use middleware.ErrorResponse and the shared envelope:

	{"error": "...", "message": "..."}
*/
package handlers

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Hall of Shame API server.

Hall of Shame is a party voting game: friends join a session with a
4-letter room code, the host opens 60-second rounds, and everyone votes
for the person who messed up, with a reason. When the host ends the
session, the most-voted player is crowned the culprit; ties are settled
by a single server-side draw so every client sees the same loser.

# Starting the Server

	go run main.go

By default the server uses a local sqlite file. For PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3419 -t postgres -d "postgres://..."

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - DATABASE_URL (-d): Connection string; required for postgres
  - BASE_URL (-base-url): Public base URL for join links and QR codes

A .env file in the working directory is loaded at startup.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (sessions, rounds, results, events)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, player identity
  - store: Database access with sentinel errors
  - game: Tallying, tie detection, and the session state machine
  - events: In-process fan-out for server-sent events
  - models: Request/response and domain types
  - auth: ID and room code generation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

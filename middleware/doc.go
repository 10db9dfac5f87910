// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers.

# Helpers

  - WithLogging: slog request/completion logging around a handler
  - JSONResponse / ErrorResponse: JSON envelope writers
  - ParseJSONBody: request body decoding
  - CORS: permissive cross-origin headers plus preflight handling
  - PlayerID: reads the X-Player-ID identity header

Error responses use the shared envelope:

	{"error": "Conflict", "message": "voter already voted this round"}
*/
package middleware

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth generates the identifiers the game hands out.

# Identifiers

  - GenerateID: random hex IDs for sessions and rounds
  - NewPlayerID: UUID identity tokens players keep across visits
  - GenerateRoomCode: 4-char uppercase alphanumeric room codes

There is no authentication: a client is whoever its X-Player-ID header says
it is. Host-only operations compare that header against the session's
host_id and nothing more.
*/
package auth

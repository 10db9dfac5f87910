// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"math/rand"

	"github.com/google/uuid"
)

// RoomCodeLength is the length of generated room codes.
const RoomCodeLength = 4

// roomCodeChars are the characters room codes are drawn from. Codes are
// stored uppercase and matched case-insensitively.
const roomCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := crand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewPlayerID creates a stable identity token for a player. Clients keep
// the token across visits and present it on rejoin.
func NewPlayerID() string {
	return uuid.NewString()
}

// GenerateRoomCode creates a random room code. Uniqueness among live
// sessions is the caller's problem (insert and retry on collision).
func GenerateRoomCode() string {
	code := make([]byte, RoomCodeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(roomCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = roomCodeChars[rand.Intn(len(roomCodeChars))]
			continue
		}
		code[i] = roomCodeChars[n.Int64()]
	}
	return string(code)
}

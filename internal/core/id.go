// Package core holds identifiers shared across packages.
package core

import (
	"strings"

	"github.com/google/uuid"
)

// SessionID identifies one process lifetime of an agent.
type SessionID string

func NewSessionID() SessionID {
	return SessionID("sess_" + uuid.NewString())
}

// Valid reports whether id was produced by NewSessionID.
func (id SessionID) Valid() bool {
	raw, ok := strings.CutPrefix(string(id), "sess_")
	if !ok {
		return false
	}
	_, err := uuid.Parse(raw)
	return err == nil
}

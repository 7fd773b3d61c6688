package id

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID creates a unique random identifier for a session.
func GenerateID() string {
	return uuid.NewString()
}

// Short returns the first eight hex characters of an identifier, which is
// enough to tell apart files written in the same second.
func Short(id string) string {
	s := strings.ReplaceAll(id, "-", "")
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

package utils

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// NewRandomID returns a fresh task (or correlation) id.
func NewRandomID() string {
	return uuid.NewString()
}

// NewID returns a deterministic id for the given seed; test helper.
func NewID(seed int64) string {
	return uuid.NewMD5(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d", seed))).String()
}

// IsValidID reports whether the given string is an id we could have minted.
func IsValidID(in string) bool {
	_, err := uuid.Parse(in)
	return err == nil
}

// NodeName identifies this cluster node on events it emits. Hostname, falling
// back to a random id when the hostname is unavailable.
func NodeName() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return NewRandomID()
	}
	return name
}

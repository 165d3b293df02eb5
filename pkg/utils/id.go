package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// shortIDBytes yields 8 characters of unpadded base64.
const shortIDBytes = 6

// GenShortID returns a random URL-safe room code. It fails only if the
// system's entropy source does; callers treat that as the room not being
// creatable rather than falling back to a weaker id.
func GenShortID() (string, error) {
	b := make([]byte, shortIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

package httpx

import "github.com/google/uuid"

// NewRequestID returns a random (version 4) UUID string.
func NewRequestID() string {
	return uuid.NewString()
}

package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a fresh session id.
func GenerateID() string {
	return uuid.NewString()
}

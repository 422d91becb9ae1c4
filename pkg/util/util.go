package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID generates a standard v4 UUID.
func GenerateUUID() string {
	return uuid.New().String()
}

// GenerateShortUUID generates a UUID without dashes.
func GenerateShortUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

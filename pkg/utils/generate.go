package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== SESSION ====================

// GenerateSessionID returns a new cart session id.
func GenerateSessionID() string {
	return uuid.New().String()
}

// IsValidSessionID reports whether s is a uuid.
func IsValidSessionID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ==================== PAYMENT ====================

// GenerateMockPreferenceID builds a local preference id: MP-<unix>-<1000..9999>.
func GenerateMockPreferenceID(now time.Time) string {
	return fmt.Sprintf("MP-%d-%d", now.Unix(), 1000+rand.Intn(9000))
}

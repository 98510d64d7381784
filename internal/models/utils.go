package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateRecordID creates a deterministic ID for a schedule record from its
// uniqueness key, so re-scrapes of the same slot produce the same ID.
func GenerateRecordID(key string) string {
	normalized := strings.ToLower(strings.TrimSpace(key))
	hash := sha256.Sum256([]byte(normalized))
	return "sched_" + hex.EncodeToString(hash[:])[:12]
}

// NewRunID creates a unique ID for a scrape run
func NewRunID() string {
	return "run_" + uuid.New().String()[:8]
}

// MeetPK renders the DynamoDB partition key for a meet
func MeetPK(meetName string) string {
	return "MEET#" + meetName
}

// ValidatePlatform checks if the platform is one of the three known lanes
func ValidatePlatform(platform string) bool {
	switch platform {
	case PlatformRed, PlatformWhite, PlatformBlue:
		return true
	}
	return false
}

// CanonicalPlatform matches a platform cell case-insensitively and returns
// the canonical casing, or "" when the text is not a known platform.
func CanonicalPlatform(text string) string {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "red":
		return PlatformRed
	case "white":
		return PlatformWhite
	case "blue":
		return PlatformBlue
	}
	return ""
}

// ValidateKeyMode checks if the key mode is valid
func ValidateKeyMode(mode string) bool {
	return mode == KeyModeEvent || mode == KeyModeDate
}

// ValidateStrategy checks if the parsing strategy is valid
func ValidateStrategy(strategy string) bool {
	switch strategy {
	case StrategyAuto, StrategyHeaders, StrategyPositional:
		return true
	}
	return false
}

// FormatSession renders a session for display, e.g. "Session 3 (Red)"
func FormatSession(sessionID int, platform string) string {
	return fmt.Sprintf("Session %d (%s)", sessionID, platform)
}

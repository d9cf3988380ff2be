package utils

import (
	"encoding/binary"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== IDS ====================

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewObjectID returns a 24 char hex id: 4 bytes of unix seconds followed by
// 8 random bytes.
func NewObjectID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	r := uuid.New()
	copy(b[4:], r[:8])
	return hex.EncodeToString(b[:])
}

// IsObjectID reports whether s has the shape of a primary id.
// Anything else is treated as a slug by the catalog.
func IsObjectID(s string) bool {
	return objectIDPattern.MatchString(s)
}

// NormalizeObjectID lowercases an id so mixed-case input hits the same row.
func NormalizeObjectID(s string) string {
	return strings.ToLower(s)
}

// ==================== SLUG ====================

var slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)

func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugSeparator.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ==================== FILES ====================

// GenerateFileName keeps the extension of the uploaded name and replaces the rest.
func GenerateFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.NewString() + ext
}

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewObjectID(t *testing.T) {
	a := NewObjectID()
	b := NewObjectID()

	assert.Len(t, a, 24)
	assert.True(t, IsObjectID(a))
	assert.Equal(t, strings.ToLower(a), a)
	assert.NotEqual(t, a, b)
}

func TestIsObjectID(t *testing.T) {
	assert.True(t, IsObjectID("65f1a2b3c4d5e6f708192a3b"))
	assert.True(t, IsObjectID("65F1A2B3C4D5E6F708192A3B"))

	assert.False(t, IsObjectID("gas1"))
	assert.False(t, IsObjectID(""))
	assert.False(t, IsObjectID("65f1a2b3c4d5e6f708192a3"))
	assert.False(t, IsObjectID("65f1a2b3c4d5e6f708192a3bc"))
	assert.False(t, IsObjectID("65f1a2b3c4d5e6f708192a3z"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "ac-gas-refill", Slugify("  AC Gas   Refill "))
	assert.Equal(t, "tap-leak-repair", Slugify("Tap & Leak -- Repair!"))
	assert.Equal(t, "", Slugify("***"))
}

func TestGenerateFileName(t *testing.T) {
	name := GenerateFileName("Photo.JPG")
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotContains(t, name, "Photo")
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	t.Run("offset is kept", func(t *testing.T) {
		got, err := ParseDateTime("2025-01-01T10:00:00Z", loc)
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)))
	})

	t.Run("local layouts use the configured zone", func(t *testing.T) {
		for _, value := range []string{"2025-01-01T10:00", "2025-01-01 10:00", "2025-01-01T10:00:00.000"} {
			got, err := ParseDateTime(value, loc)
			require.NoError(t, err, value)
			assert.True(t, got.Equal(time.Date(2025, 1, 1, 10, 0, 0, 0, loc)), value)
		}
	})

	t.Run("date only", func(t *testing.T) {
		got, err := ParseDateTime("2025-01-01", nil)
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("garbage", func(t *testing.T) {
		for _, value := range []string{"", "   ", "not-a-date", "2025-13-45"} {
			_, err := ParseDateTime(value, loc)
			assert.Error(t, err, value)
		}
	})
}

func TestParsePrice(t *testing.T) {
	price, err := ParsePrice("")
	require.NoError(t, err)
	assert.Zero(t, price)

	price, err = ParsePrice(" 2499.50 ")
	require.NoError(t, err)
	assert.Equal(t, 2499.5, price)

	_, err = ParsePrice("-1")
	assert.Error(t, err)

	_, err = ParsePrice("abc")
	assert.Error(t, err)
}

func TestFormatSchedule(t *testing.T) {
	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "Wed, 01 Jan 2025 10:00 AM", FormatSchedule(at, time.UTC))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, ParseInt("3", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("0", 1))
	assert.Equal(t, 20, ParseInt("x", 20))
}

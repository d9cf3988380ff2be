package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	flags, err := Flags(nil)
	require.NoError(t, err)

	config, err := LoadConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, "http://localhost:5173", config.App.FrontendOrigin)
	assert.Equal(t, time.UTC.String(), config.App.Timezone.String())
	assert.Equal(t, 168, config.JWT.ExpiryHours)
	assert.Equal(t, 10*time.Second, config.Notify.Timeout)
	assert.Equal(t, int64(5<<20), config.Upload.MaxBytes)
	assert.Equal(t, "@daily", config.Upload.SweepSchedule)
	assert.Equal(t, 5.0, config.RateLimit.RPS)
	assert.False(t, config.Seed.Run)
}

func TestLoadConfig_EnvAndFlags(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("APP_TIMEZONE", "Asia/Kolkata")
	t.Setenv("NOTIFY_TIMEOUT", "3s")

	flags, err := Flags([]string{"--seed", "--port", "7000"})
	require.NoError(t, err)

	config, err := LoadConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, "7000", config.App.Port, "flags win over the environment")
	assert.True(t, config.Seed.Run)
	assert.Equal(t, "memory", config.Database.Driver)
	assert.Equal(t, "Asia/Kolkata", config.App.Timezone.String())
	assert.Equal(t, 3*time.Second, config.Notify.Timeout)
}

func TestLoadConfig_BadTimezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	_, err := LoadConfig(nil)
	assert.Error(t, err)
}

func TestCheckJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DEBUG", "false")

	config, err := LoadConfig(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultJWTSecret, config.JWT.Secret)

	usingDefault, err := config.CheckJWTSecret()
	assert.True(t, usingDefault)
	assert.ErrorIs(t, err, ErrDefaultJWTSecret)

	config.App.Debug = true
	usingDefault, err = config.CheckJWTSecret()
	assert.True(t, usingDefault)
	assert.NoError(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	config, err = LoadConfig(nil)
	require.NoError(t, err)
	usingDefault, err = config.CheckJWTSecret()
	assert.False(t, usingDefault)
	assert.NoError(t, err)
}

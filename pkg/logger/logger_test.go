package logger

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	config := &Config{
		Level:  "warn",
		Debug:  true,
		Output: "stdout",
	}

	require.NoError(t, Init(config))
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	err := Init(&Config{Level: "loud"})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(&Config{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	level, err = ParseLevel(&Config{Level: "error"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.ErrorLevel, level)
}

func TestWriter(t *testing.T) {
	assert.Equal(t, os.Stderr, Writer(&Config{}))
	assert.Equal(t, os.Stdout, Writer(&Config{Output: "stdout"}))

	_, ok := Writer(&Config{Format: FormatConsole}).(zerolog.ConsoleWriter)
	assert.True(t, ok)
}

func TestInitSetsPackageLogger(t *testing.T) {
	require.NoError(t, Init(&Config{Level: "error"}))

	assert.Equal(t, zerolog.ErrorLevel, GetLogger().GetLevel())
	assert.Equal(t, zerolog.ErrorLevel, log.Logger.GetLevel())

	require.NoError(t, Init(&Config{}))
	assert.Equal(t, zerolog.InfoLevel, GetLogger().GetLevel())
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("PORTAUDIT_LOG_LEVEL", "")
	t.Setenv("PORTAUDIT_DEBUG", "yes")

	config := DefaultConfig()

	assert.Equal(t, "info", config.Level)
	assert.Equal(t, "stderr", config.Output)
	assert.Equal(t, FormatJSON, config.Format)
	assert.True(t, config.Debug)
}

func TestNewTestLoggerDiscards(t *testing.T) {
	l := NewTestLogger()
	l.Info().Str("k", "v").Msg("dropped")
	assert.Equal(t, zerolog.Disabled, l.WithComponent("x").GetLevel())
}

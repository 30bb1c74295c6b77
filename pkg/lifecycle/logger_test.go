package lifecycle

import (
	"testing"

	"github.com/carverauto/portaudit/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerImplLevels(t *testing.T) {
	impl, err := NewLoggerImpl(&logger.Config{Level: "warn"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, impl.logger.GetLevel())

	impl.SetDebug(true)
	assert.Equal(t, zerolog.DebugLevel, impl.logger.GetLevel())

	impl.SetDebug(false)
	assert.Equal(t, zerolog.InfoLevel, impl.logger.GetLevel())
}

func TestNewLoggerImplRejectsBadLevel(t *testing.T) {
	_, err := NewLoggerImpl(&logger.Config{Level: "chatty"})
	require.Error(t, err)
}

func TestCreateComponentLogger(t *testing.T) {
	log, err := CreateComponentLogger("utilization", &logger.Config{Level: "error"})
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, zerolog.ErrorLevel, log.WithComponent("probe").GetLevel())
}

func TestInitializeLoggerDefaults(t *testing.T) {
	require.NoError(t, InitializeLogger(nil))
}

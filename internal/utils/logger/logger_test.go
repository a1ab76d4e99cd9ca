package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	defer func() {
		require.NoError(t, SetLogLevel(zerolog.LevelInfoValue, LogFormatTextValue))
	}()
	require.NoError(t, SetLogLevel("trace", LogFormatJsonValue))
	assert.Equal(t, zerolog.TraceLevel, log.Logger.GetLevel())
	require.NoError(t, SetLogLevel("error", LogFormatTextValue))
	assert.Equal(t, zerolog.ErrorLevel, log.Logger.GetLevel())

	require.Error(t, SetLogLevel("verbose", LogFormatTextValue))
	require.Error(t, SetLogLevel("info", "xml"))
}

func TestLevelFromVerbosity(t *testing.T) {
	assert.Equal(t, "info", LevelFromVerbosity(false, 0, "info"))
	assert.Equal(t, "warn", LevelFromVerbosity(true, 2, "info"))
	assert.Equal(t, "debug", LevelFromVerbosity(false, 1, "info"))
	assert.Equal(t, "trace", LevelFromVerbosity(false, 3, "info"))
}

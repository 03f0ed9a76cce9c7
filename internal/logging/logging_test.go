package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("level comes from the environment", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")

		logger, err := New()
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("garbage level falls back to info", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "chatty")

		logger, err := New()
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("console format builds", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "console")

		_, err := New()
		require.NoError(t, err)
	})
}

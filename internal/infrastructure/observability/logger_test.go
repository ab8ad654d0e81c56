package observability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/observability"
)

func TestNewLogger(t *testing.T) {
	t.Run("json logger at requested level", func(t *testing.T) {
		logger, err := observability.NewLogger("warn", "json")

		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("console logger", func(t *testing.T) {
		logger, err := observability.NewLogger("debug", "console")

		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := observability.NewLogger("loud", "json")

		assert.Error(t, err)
	})
}

func TestNewLogger_UnknownFormat(t *testing.T) {
	_, err := observability.NewLogger("info", "xml")

	assert.Error(t, err)
}

package logger

import (
	"testing"

	"quiz-forge/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	t.Cleanup(func() { _ = Initialize(config.LoggerConfig{}) })

	assert.NoError(t, Initialize(config.LoggerConfig{Level: "debug", Env: "production"}))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))

	assert.NoError(t, Initialize(config.LoggerConfig{Level: "WARN"}))
	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Get().Core().Enabled(zapcore.WarnLevel))

	assert.NoError(t, Initialize(config.LoggerConfig{}))
	assert.True(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))

	assert.Error(t, Initialize(config.LoggerConfig{Level: "loud"}))
}

package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizrunner/internal/config"
	"github.com/aliskhannn/quizrunner/internal/logger"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := logger.New(&config.Config{Log: config.Log{Level: "loud"}})
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.log")

	lg, err := logger.New(&config.Config{
		Env: "production",
		Log: config.Log{Level: "info", File: path},
	})
	require.NoError(t, err)

	lg.Debug("hidden")
	lg.Info("quiz loaded", zap.Int("questions", 3))
	_ = lg.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"quiz loaded"`)
	assert.Contains(t, string(data), `"questions":3`)
	assert.NotContains(t, string(data), "hidden")
}

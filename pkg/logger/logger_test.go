package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Astemirdum/bookshelf-service/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Sink(t *testing.T) {
	sink := filepath.Join(t.TempDir(), "bookshelf.log")
	log, err := logger.NewLogger(logger.Log{LogLevel: zapcore.InfoLevel, Sink: sink}, "test")
	require.NoError(t, err)

	log.Debug("skipped")
	log.Info("written")
	_ = log.Sync()

	data, err := os.ReadFile(sink)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"written"`)
	require.Contains(t, string(data), `"logger":"test"`)
	require.NotContains(t, string(data), "skipped")
}

func TestNewLogger_BadSink(t *testing.T) {
	log, err := logger.NewLogger(logger.Log{LogLevel: zapcore.InfoLevel, Sink: t.TempDir()}, "test")
	require.Error(t, err)
	require.Nil(t, log)
}

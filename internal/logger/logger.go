package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aliskhannn/quizrunner/internal/config"
)

// New builds the application logger. Production environments log JSON,
// everything else uses the development console encoder. When a log file is
// configured, entries are also written as JSON to a rotated file.
func New(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var zcfg zap.Config
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	if cfg.Log.File == "" {
		return zcfg.Build()
	}

	var consoleEncoder zapcore.Encoder
	if cfg.Env == "production" {
		consoleEncoder = zapcore.NewJSONEncoder(zcfg.EncoderConfig)
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(zcfg.EncoderConfig)
	}

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), fileWriter, level),
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level),
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)), nil
}

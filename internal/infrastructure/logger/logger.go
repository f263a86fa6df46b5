// Package logger implements LoggerPort on zap: a human console core plus a
// rotated JSON file core for post-run analysis.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"autoapply/internal/application/port/output"
)

var _ output.LoggerPort = (*ZapLogger)(nil)

type ZapLogger struct {
	sugar *zap.SugaredLogger
}

type Config struct {
	Level      string
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Console    bool
}

func DefaultConfig() Config {
	return Config{
		Level:      "info",
		FilePath:   "log/autoapply.log",
		MaxSizeMB:  20,
		MaxBackups: 5,
		MaxAgeDays: 14,
		Console:    true,
	}
}

func New(cfg Config) (*ZapLogger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		level = zapcore.InfoLevel
	}

	var cores []zapcore.Core

	if cfg.Console {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	if cfg.FilePath != "" {
		writer := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(writer),
			level,
		))
	}

	core := zapcore.NewTee(cores...)
	return &ZapLogger{sugar: zap.New(core).Sugar()}, nil
}

func (l *ZapLogger) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *ZapLogger) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *ZapLogger) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *ZapLogger) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

func (l *ZapLogger) WithField(key string, value any) output.LoggerPort {
	return &ZapLogger{sugar: l.sugar.With(key, value)}
}

func (l *ZapLogger) Close() error {
	// Sync on stdout fails on some platforms; rotation handles the file.
	_ = l.sugar.Sync()
	return nil
}

/*
NAME
  logging.go

DESCRIPTION
  Structured, optionally file-rotated logger used by the prismpack CLI.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

// Package plog provides the Logger used across the PRISM toolchain: a
// small level-gated interface backed by zap, with log files rotated by
// lumberjack when a file path is configured.
package plog

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Severity levels, matching the int8 levels the teacher's revid.Logger
// interface uses.
const (
	Debug int8 = iota
	Info
	Warning
	Error
)

// Logger is the logging interface the prismpack command depends on.
// SetLevel changes the minimum severity that reaches the sink; Log
// records one structured entry.
type Logger interface {
	SetLevel(level int8)
	Log(level int8, message string, params ...interface{})
}

// ZapLogger backs Logger with zap's sugared logger and an atomic level,
// so SetLevel can be changed at runtime without rebuilding the core.
type ZapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// Config controls where ZapLogger writes and how logs rotate.
type Config struct {
	// FilePath, if non-empty, is rotated via lumberjack.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// ExtraWriters receives every log entry in addition to stdout and the
	// rotated file, mirroring cmd/looper's io.MultiWriter(fileLog, nl)
	// pattern for shipping logs to a second sink.
	ExtraWriters []io.Writer
}

// New builds a ZapLogger writing JSON-encoded entries to stdout and,
// when cfg.FilePath is set, to a lumberjack-rotated file.
func New(cfg Config) *ZapLogger {
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)

	syncers := []zapcore.WriteSyncer{zapcore.Lock(zapcore.AddSync(os.Stdout))}
	if cfg.FilePath != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		syncers = append(syncers, zapcore.AddSync(rotated))
	}
	for _, w := range cfg.ExtraWriters {
		syncers = append(syncers, zapcore.AddSync(w))
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.NewMultiWriteSyncer(syncers...), level)
	logger := zap.New(core)
	return &ZapLogger{sugar: logger.Sugar(), level: level}
}

// SetLevel implements Logger.
func (l *ZapLogger) SetLevel(level int8) {
	l.level.SetLevel(toZapLevel(level))
}

// Log implements Logger.
func (l *ZapLogger) Log(level int8, message string, params ...interface{}) {
	switch level {
	case Debug:
		l.sugar.Debugw(message, params...)
	case Info:
		l.sugar.Infow(message, params...)
	case Warning:
		l.sugar.Warnw(message, params...)
	default:
		l.sugar.Errorw(message, params...)
	}
}

func toZapLevel(level int8) zapcore.Level {
	switch level {
	case Debug:
		return zapcore.DebugLevel
	case Info:
		return zapcore.InfoLevel
	case Warning:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

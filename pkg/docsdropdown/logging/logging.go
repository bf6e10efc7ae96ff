// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

// Package logging routes go-cli-ui's internal logger and the
// command's own debug output through zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/cppforlife/go-cli-ui/ui"
	"github.com/rs/zerolog"
)

// LevelEnvVar controls the log level: debug, info, warn, error (default: warn)
const LevelEnvVar = "DOCSDROPDOWN_LOG_LEVEL"

// NewLogger returns a console logger writing to out.
func NewLogger(out io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).With().Timestamp().Logger()
}

// Configure sets the global level. Debug wins over the environment.
func Configure(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(levelFromEnv(os.Getenv(LevelEnvVar)))
}

func levelFromEnv(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

type UILogger struct {
	logger zerolog.Logger
}

var _ ui.ExternalLogger = UILogger{}

func NewUILogger(logger zerolog.Logger) UILogger {
	return UILogger{logger}
}

func (l UILogger) Error(tag, msg string, args ...interface{}) {
	l.logger.Error().Str("tag", tag).Msgf(msg, args...)
}

func (l UILogger) Debug(tag, msg string, args ...interface{}) {
	l.logger.Debug().Str("tag", tag).Msgf(msg, args...)
}

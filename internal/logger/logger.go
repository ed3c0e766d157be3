// Package logger provides a zerolog wrapper with opinionated defaults.
// pterm handles the human-facing console; this package carries the
// structured diagnostic stream (warnings from best-effort fetches,
// retry decisions, skipped years) to stderr.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger
type Options struct {
	Level  string
	Format string
	Writer io.Writer
}

// FromEnv builds Options from LOG_LEVEL / LOG_FORMAT environment variables.
func FromEnv() Options {
	return Options{
		Level:  strings.ToLower(os.Getenv("LOG_LEVEL")),
		Format: strings.ToLower(os.Getenv("LOG_FORMAT")),
	}
}

var (
	once   sync.Once
	root   atomic.Pointer[zerolog.Logger]
	inited atomic.Bool
)

// Logger is the project-wide logging type.
type Logger = zerolog.Logger

// Get returns the process-wide root logger as a pointer
func Get() *Logger {
	if !inited.Load() {
		Init(FromEnv())
	}
	return root.Load()
}

// Init configures zerolog and builds the root logger, safe to call once
func Init(opt Options) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339

		lvl := parseLevel(opt.Level)

		var w io.Writer = os.Stderr
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format != "json" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
		}

		log := zerolog.New(w).Level(lvl).With().Timestamp().Logger()

		root.Store(&log)
		inited.Store(true)
	})
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}

// parseLevel supports string-only levels
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "", "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

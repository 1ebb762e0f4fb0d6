package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the level and output format of every logger created after
// Configure is called.
type Options struct {
	Level  string    // debug, info, warn or error
	Format string    // json or console; empty picks console when APP_ENV=dev
	Output io.Writer // defaults to stderr
}

var (
	settingsMu sync.RWMutex
	settings   = Options{Level: "info"}
)

// Configure replaces the global logging options.
func Configure(opts Options) error {
	if _, err := parseLevel(opts.Level); err != nil {
		return err
	}
	switch opts.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", opts.Format)
	}
	settingsMu.Lock()
	settings = opts
	settingsMu.Unlock()
	return nil
}

func parseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger tagged with the component field.
// Console output is used when configured, or when APP_ENV=dev and no format
// was set explicitly.
func NewZerologLogger(component string) Logger {
	settingsMu.RLock()
	opts := settings
	settingsMu.RUnlock()

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	format := opts.Format
	if format == "" && strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		format = "console"
	}
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	lvl, _ := parseLevel(opts.Level)
	z := zerolog.New(out).Level(lvl).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Infow(msg string, fields map[string]any) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

// Package logging builds the zerolog logger used across occfg.
//
// Console output is used when stderr is a terminal; JSON otherwise or when
// the format is "json". Store writes log at info, backups at debug.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// EnvLevel names the environment variable consulted when no level is configured.
const EnvLevel = "OCCFG_LOG_LEVEL"

// DefaultLevel is used when nothing else sets a level. The CLI is quiet unless asked.
const DefaultLevel = "warn"

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string

	// Format is "console", "json" or "auto" (console on a terminal).
	Format string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// New creates a logger from cfg.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	level := ParseLevel(cfg.Level)

	var w io.Writer = out
	if useConsole(cfg.Format, out) {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// ResolveLevel applies precedence: explicit flag, verbose shortcut, config
// value, environment, default.
func ResolveLevel(flagLevel string, verbose bool, configLevel string) string {
	switch {
	case flagLevel != "":
		return flagLevel
	case verbose:
		return "debug"
	case configLevel != "":
		return configLevel
	case os.Getenv(EnvLevel) != "":
		return os.Getenv(EnvLevel)
	}
	return DefaultLevel
}

// ParseLevel converts a level name, falling back to DefaultLevel on bad input.
func ParseLevel(s string) zerolog.Level {
	if strings.TrimSpace(s) == "" {
		s = DefaultLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		level, _ = zerolog.ParseLevel(DefaultLevel)
	}
	return level
}

func useConsole(format string, out io.Writer) bool {
	switch strings.ToLower(format) {
	case "json":
		return false
	case "console", "pretty":
		return true
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type contextKey struct{}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger attached to ctx, or a no-op logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(zerolog.Logger); ok {
			return l
		}
	}
	return zerolog.Nop()
}

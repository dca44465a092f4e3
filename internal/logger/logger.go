package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the process logger.
type Options struct {
	// Level is one of trace, debug, info, warn, error, fatal or panic.
	// Anything else means info.
	Level string
	// Format "pretty" selects console output; anything else is JSON.
	Format string
	// Service is stamped on every line so server and tool logs can share a
	// sink.
	Service string
	// Stderr sends logs to stderr. The CLIs keep stdout for their results.
	Stderr bool
	// Out overrides the destination.
	Out io.Writer
}

// New builds the process logger and sets the global level.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
		if opts.Stderr {
			out = os.Stderr
		}
	}

	var writer io.Writer = out
	if opts.Format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	ctx := zerolog.New(writer).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	return ctx.Caller().Logger()
}

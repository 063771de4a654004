package app

import (
	"io"
	"log/slog"

	"github.com/vk/ck3graph/internal/config"
)

// newLogger builds the extraction logger from opts. Unknown levels fall back
// to info. Debug output carries source locations. The global logger is left
// untouched.
func newLogger(opts config.Options, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}
	var handler slog.Handler
	switch opts.LogFormat {
	case "json":
		handler = slog.NewJSONHandler(outW, handlerOpts)
	default:
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}

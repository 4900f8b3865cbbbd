package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

type Config struct {
	Level  string
	Format string
	// optional, records are written to stderr and appended to this file
	File string
}

// New builds the process logger on stderr, stdout carries command output.
// The returned cleanup closes the log file, if any.
func New(cfg Config) (*slog.Logger, func(), error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg Config, w io.Writer) (*slog.Logger, func(), error) {
	logLevel := slog.LevelInfo.Level()
	if len(cfg.Level) > 0 {
		// logLevel not change if unmarshall failed
		if err := logLevel.UnmarshalText([]byte(cfg.Level)); err != nil {
			fmt.Fprintln(os.Stderr, "input invalid log level, use default log level INFO")
		}
	}
	opt := &slog.HandlerOptions{AddSource: false, Level: logLevel}

	handler := newHandler(cfg.Format, w, opt)
	cleanup := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
		}
		// the file always gets json records
		handler = slogmulti.Fanout(handler, slog.NewJSONHandler(f, opt))
		cleanup = func() { _ = f.Close() }
	}

	return slog.New(&ContextHandler{Handler: handler}), cleanup, nil
}

func newHandler(format string, w io.Writer, opt *slog.HandlerOptions) slog.Handler {
	switch format {
	case "json":
		return slog.NewJSONHandler(w, opt)
	default:
		return slog.NewTextHandler(w, opt)
	}
}

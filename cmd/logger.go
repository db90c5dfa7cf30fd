package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/k1LoW/errors"
	slogmulti "github.com/samber/slog-multi"
)

// newLogger fans records out to w and, when path is set, to a JSON log file.
// The returned func closes the file.
func newLogger(w io.Writer, format string, verbose bool, path string) (_ *slog.Logger, _ func() error, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	switch format {
	case "", "text":
		handlers = append(handlers, slog.NewTextHandler(w, opts))
	case "json":
		handlers = append(handlers, slog.NewJSONHandler(w, opts))
	default:
		return nil, nil, fmt.Errorf("invalid log format %q: must be text or json", format)
	}

	closer := func() error { return nil }
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closer = f.Close
	}

	l := slog.New(slogmulti.Fanout(handlers...)).With(slog.String("run_id", uuid.NewString()))
	return l, closer, nil
}

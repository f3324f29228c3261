package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

type Options struct {
	Level   slog.Level
	JSON    bool
	NoColor bool
}

// New creates the process-wide diagnostic logger. Operator-facing test output does not go
// through here; that is the job of the reporters in the framework package.
func New(w io.Writer, opts Options, appName string) *slog.Logger {
	if opts.JSON {
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: opts.Level,
		})
		return slog.New(h).With("app", appName)
	}

	h := tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	})
	return slog.New(h).With("app", appName)
}

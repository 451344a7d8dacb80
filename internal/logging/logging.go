package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// Opts configures the logger.
type Opts struct {
	// File receives JSON log lines. Empty discards all output.
	File  string
	Level slog.Level
}

// New builds a slog logger backed by zerolog. The returned closer releases
// the log file, if any.
func New(opts Opts) (*slog.Logger, io.Closer, error) {
	var w io.Writer = io.Discard
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	return NewWithWriter(w, opts.Level), closer, nil
}

// NewWithWriter builds a logger writing JSON lines to w.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	zl := zerolog.New(w).With().Timestamp().Logger()

	handler := slogzerolog.Option{
		Level:  level,
		Logger: &zl,
	}.NewZerologHandler()

	return slog.New(handler).With("app", "pawshower")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

package logging

import (
	"io"
	"log"
	"os"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/sysoverlay/internal/errors"
)

// Open builds the application logger. Entries go to the file at path.
// Without a file, debug-level logging falls back to plain lines on console
// when one is given (the one-shot mode leaves stderr free); otherwise
// entries are discarded, since the overlay owns the terminal.
// On success the returned close function is never nil.
func Open(path, level string, console io.Writer) (Logger, func() error, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, nil, apperrors.NewConfigError("invalid log level %q", level)
	}
	noop := func() error { return nil }
	if path == "" {
		if console != nil && lvl <= zerolog.DebugLevel {
			return NewStdLoggerAdapter(log.New(console, "sysoverlay: ", log.LstdFlags)), noop, nil
		}
		return NewNopLogger(), noop, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, apperrors.WrapError(err, "open log file %s", path)
	}
	return newLeveled(f, lvl), f.Close, nil
}

func newLeveled(w io.Writer, lvl zerolog.Level) *ZerologAdapter {
	return NewZerologAdapter(zerolog.New(w).Level(lvl).With().Timestamp().Str("component", "sysoverlay").Logger())
}

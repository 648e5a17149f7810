package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Setup builds the root JSON logger. Output goes to stdout and, when logFile
// is set, to that file as well. The returned closer releases the file.
func Setup(level, logFile string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return zerolog.Nop(), closer, err
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		w = io.MultiWriter(os.Stdout, f)
		closer = f
	}

	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return logger, closer, nil
}

// Named returns a child logger tagged with a component name
// (api, admin, cart, orders, products, ...).
func Named(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("logger", name).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

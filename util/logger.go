package util

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger. pretty switches to the
// human-readable console writer used in development.
func InitLogger(level string, pretty bool) {
	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	SetLogOutput(out, level)
}

// SetLogOutput points the application and security loggers at w.
func SetLogOutput(w io.Writer, level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	setSecurityLogger(log.Logger)
}

// Logger returns the application logger configured by InitLogger.
func Logger() *zerolog.Logger {
	return &log.Logger
}

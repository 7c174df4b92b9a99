// Package logger provides the configured zerolog logger for the service.
package logger

import (
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// New returns a zerolog.Logger tagged with the service name, writing
// JSON lines to stdout. The level is taken from TINTO_BACKEND_LOG_LEVEL
// (default info). Error events logged with .Stack() carry a stack trace
// even when the underlying error was created without one.
func New(serviceName string) zerolog.Logger {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}

	level := zerolog.InfoLevel
	if raw := os.Getenv("TINTO_BACKEND_LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New creates a JSON logger tagged with the service name.
func New(serviceName string) zerolog.Logger {
	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

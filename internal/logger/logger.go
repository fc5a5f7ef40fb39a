package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger. Pretty output is for local
// development; deployments log JSON lines to stdout.
func New(debug, pretty bool) zerolog.Logger {
	var log zerolog.Logger
	if pretty {
		log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	} else {
		log = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	if debug {
		return log.Level(zerolog.DebugLevel)
	}
	return log.Level(zerolog.InfoLevel)
}

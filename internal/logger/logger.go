package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns the service logger. Pretty output adds caller info for local runs.
func New(pretty bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, pretty)
}

func NewWithWriter(w io.Writer, pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if pretty {
		output := zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05"}
		return zerolog.New(output).With().Timestamp().Caller().Str("service", "wallet-ledger").Logger()
	}

	return zerolog.New(w).With().Timestamp().Str("service", "wallet-ledger").Logger()
}

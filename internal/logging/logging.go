// Package logging provides zerolog setup for the CLI and the components it wires.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config defines the behavior of the logger
type Config struct {
	Level        string `json:"level" validate:"omitempty,oneof=trace debug info warn error fatal disabled"`
	Format       string `json:"format" validate:"omitempty,oneof=json pretty"`
	TimeFormat   string `json:"time_format,omitempty"`
	ReportCaller bool   `json:"report_caller,omitempty"`
}

// DefaultConfig logs info and above as JSON
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json"}
}

// New builds a logger writing to w. Pretty format uses a console writer.
// An unparseable level falls back to info.
func New(config Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}

	output := w
	if config.Format == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: timeFormat(config),
			NoColor:    w != os.Stderr && w != os.Stdout,
		}
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if config.ReportCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// Init builds a stderr logger, installs it as the zerolog global logger and returns it
func Init(config Config) zerolog.Logger {
	zerolog.TimeFieldFormat = timeFormat(config)
	logger := New(config, os.Stderr)
	log.Logger = logger
	return logger
}

func timeFormat(config Config) string {
	if config.TimeFormat == "" {
		return time.RFC3339
	}
	return config.TimeFormat
}

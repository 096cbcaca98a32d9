package utils

import (
	"io"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/logfmt"
)

// NewLogger returns a logfmt logger writing to output (stderr when nil). debug forces the debug
// level.
func NewLogger(level log.Level, debug bool, output io.Writer) *log.Logger {
	if output == nil {
		output = os.Stderr
	}

	logger := &log.Logger{
		Level:   level,
		Handler: logfmt.New(output),
	}

	if debug {
		logger.Level = log.DebugLevel
	}

	return logger
}

// Package logging holds the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

var (
	L       zerolog.Logger
	logFile *os.File
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	L = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

func SetLogLevel(level zerolog.Level) {
	L = L.Level(level)
}

// SetLogOutput redirects logs to a file inside dir, optionally keeping console
// output alongside it.
func SetLogOutput(dir, filename string, console bool) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
	if err != nil {
		return err
	}
	logFile = f

	var out io.Writer = f
	if console {
		out = zerolog.MultiLevelWriter(
			zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339},
			f,
		)
	}
	L = zerolog.New(out).With().Timestamp().Logger()
	return nil
}

func Close() {
	if logFile != nil {
		_ = logFile.Close()
	}
}

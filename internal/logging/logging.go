package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// levelRouter is a zerolog.LevelWriter that routes INFO/WARN to stdout and
// ERROR+ to stderr.
type levelRouter struct {
	stdout io.Writer
	stderr io.Writer
}

func (lr levelRouter) Write(p []byte) (int, error) {
	return lr.stdout.Write(p)
}

func (lr levelRouter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level >= zerolog.ErrorLevel && level != zerolog.NoLevel {
		return lr.stderr.Write(p)
	}
	return lr.stdout.Write(p)
}

// New returns a logger writing INFO/WARN to stdout and ERROR+ to stderr at
// the given minimum level. An unknown level falls back to info.
func New(stdout, stderr io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(levelRouter{stdout: stdout, stderr: stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Setup configures the global logger. If logPath is non-empty, all levels are
// also appended to that file. Returns a cleanup function that closes the log
// file (if opened).
func Setup(logPath, level string) (func(), error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	cleanup := func() {}
	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	log.Logger = New(stdoutW, stderrW, level)
	return cleanup, nil
}

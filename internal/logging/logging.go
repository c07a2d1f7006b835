// Package logging builds the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup returns a zerolog logger writing human-readable lines to stderr.
// When file is non-empty the output also tees into a size-rotated log file.
// The returned closer releases the rotator; call it on shutdown.
func Setup(level, file string) (zerolog.Logger, func()) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	var w io.Writer = console
	closer := func() {}
	if file != "" {
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		w = zerolog.MultiLevelWriter(console, rotator)
		closer = func() { _ = rotator.Close() }
	}

	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return logger, closer
}

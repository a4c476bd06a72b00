// Package log configures the process-wide logger.
package log

import (
	"log/slog"

	charmlog "charm.land/log/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup routes slog output to a rotating file. With debug set, the level
// drops to debug and source locations are reported.
func Setup(file string, debug bool) {
	writer := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // MB
		MaxBackups: 3,
		Compress:   true,
	}

	level := charmlog.InfoLevel
	if debug {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(writer, charmlog.Options{
		ReportTimestamp: true,
		ReportCaller:    debug,
		Level:           level,
	})
	slog.SetDefault(slog.New(handler))
}

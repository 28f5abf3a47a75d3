// Package logging owns the process-wide zap logger used by the trace
// machinery and the CLI.
package logging

import (
	"os"

	"go.uber.org/zap"
)

var logger *zap.Logger

func init() {
	if os.Getenv("AGENTLAB_DEBUG") == "1" || os.Getenv("AGENTLAB_DEBUG") == "true" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
}

// L returns the process logger.
func L() *zap.Logger {
	return logger
}

// With returns the process logger with extra fields attached.
func With(fields ...zap.Field) *zap.Logger {
	return logger.With(fields...)
}

// Sync flushes buffered log entries. Call before exit.
func Sync() {
	_ = logger.Sync()
}

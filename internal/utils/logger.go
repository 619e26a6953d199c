package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Messages used by the application entry point.
const (
	// LoggerInitializationFailedMessageFormat reports a failure to build the application logger.
	LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"
	// ApplicationExecutionFailedMessage reports a fatal top-level execution error.
	ApplicationExecutionFailedMessage = "application execution failed"
)

// NewApplicationLogger constructs a zap logger configured for human-readable
// console output on stderr. Recoverable warnings go through this logger so
// they never mix into the primary structure/content output on stdout.
func NewApplicationLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	config.OutputPaths = []string{"stderr"}
	return config.Build()
}

// Package logging builds the zap logger shared by the CLI, the engine and
// the executor.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger is the process-wide logger. It discards everything until Init runs.
var Logger = zap.NewNop().Sugar()

// New builds a console logger. Debug enables development output at debug
// level; otherwise only warnings and errors are written.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Init replaces Logger with a console logger.
func Init(debug bool) error {
	logger, err := New(debug)
	if err != nil {
		return err
	}
	Logger = logger
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger.Sync()
}

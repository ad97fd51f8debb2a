package logger

import (
	"go.uber.org/zap"
)

type LoggerConfig struct {
	Debug bool
}

// NewLogger builds the process logger. Debug selects the development config
// with DebugLevel enabled; otherwise the production JSON config is used.
func NewLogger(cfg *LoggerConfig) (*zap.Logger, error) {
	if cfg != nil && cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

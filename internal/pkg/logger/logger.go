package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger: JSON output in production, console
// output everywhere else.
func New(environment string) *zap.Logger {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds a zap logger for the environment and installs it as the global logger.
func Init(environment string) error {
	var (
		l   *zap.Logger
		err error
	)
	switch environment {
	case "production", "staging":
		l, err = zap.NewProduction()
	case "development", "test", "":
		l, err = zap.NewDevelopment()
	default:
		return fmt.Errorf("unknown environment %q", environment)
	}
	if err != nil {
		return fmt.Errorf("failed to build zap logger -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}

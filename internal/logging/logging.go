package logging

import "go.uber.org/zap"

// New builds the process-wide logger. Production gets JSON sampling
// output, everything else the human-readable development encoder.
func New(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

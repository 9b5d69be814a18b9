package utils

import (
	"fmt"

	"go.uber.org/zap"
)

// NewSugaredLogger creates a sugared logger based on the verbose flag.
// If verbose is true, it creates a development logger, otherwise a production
// logger with sampling disabled: progress lines are already rate-limited by
// the step size, and sampling would drop some of them.
func NewSugaredLogger(verbose bool) (*zap.SugaredLogger, error) {
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create development logger: %w", err)
		}
		return l.Sugar(), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create production logger: %w", err)
	}
	return l.Sugar(), nil
}

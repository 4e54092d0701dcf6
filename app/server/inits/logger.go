package inits

import (
	"fmt"
	"go.uber.org/zap"
)

// Logger builds the process-wide zap logger: console encoding at debug level
// when debugMode is set, JSON at info level otherwise.
func Logger(debugMode bool) (l *zap.Logger, err error) {
	if debugMode {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return l, nil
}

// Package logging builds the process-wide zap logger.
package logging

import "go.uber.org/zap"

// New returns a development (console) or production (JSON) logger.
func New(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Package logging builds the process logger.
package logging

import (
	"strings"

	"go.uber.org/zap"
)

// New returns a development logger for the development environment and a
// JSON production logger otherwise.
func New(env string) (*zap.Logger, error) {
	if strings.EqualFold(env, "development") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

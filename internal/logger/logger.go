// Package logger constructs the application logger from configuration.
package logger

import (
	"github.com/sirupsen/logrus"
)

// New builds a logrus logger with the given level and format ("json" or
// "text"). An unknown level falls back to info rather than failing: logging
// configuration should never prevent startup.
func New(level, format string) *logrus.Logger {
	log := logrus.New()

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}

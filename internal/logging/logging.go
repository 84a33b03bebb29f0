package logging

import (
	"github.com/sirupsen/logrus"
)

// LogFormat selects the logrus formatter, set via LOG_FORMAT.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// NewLogger builds the process-wide logger. Unknown formats fall back to
// text.
func NewLogger(format LogFormat) *logrus.Logger {
	logger := logrus.New()
	switch format {
	case LogFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

package metadata

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the logrus logger backing a LogRecorder.
// level is a logrus level name ("debug", "info", "warn", "error").
func NewLogger(level string) (*logrus.Logger, error) {
	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := logrus.New()
	logger.SetLevel(parsedLevel)
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	return logger, nil
}

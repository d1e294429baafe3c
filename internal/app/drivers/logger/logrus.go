package logger

import (
	"assistant-service/internal/app/config"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger builds the CLI logger. Output goes to w (stderr in
// practice) so it never interleaves with the REPL on stdout.
func NewLogrusLogger(internalConfig *config.InternalConfig, driverConfig *config.DriverConfig, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	switch internalConfig.App.Env {
	case "production":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	level, err := logrus.ParseLevel(strings.ToLower(driverConfig.Logger.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

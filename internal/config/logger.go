package config

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func Init() {
	logger = logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

func Logger() *logrus.Logger {
	if logger == nil {
		Init()
	}
	return logger
}

// WithContext returns a logger tagged with the chi request ID when present.
func WithContext(ctx context.Context) logrus.FieldLogger {
	log := Logger()
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		return log.WithField("request_id", reqID)
	}
	return logrus.NewEntry(log)
}

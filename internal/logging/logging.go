package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

// InitLogger configures the process-wide logger. The logger is created once;
// repeated calls only adjust the level.
func InitLogger(level logrus.Level) {
	once.Do(func() {
		logger = logrus.New()
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	})
	logger.SetLevel(level)
}

// GetLogger returns the shared logger, initializing it at Info level if
// InitLogger was never called (keeps library-style use and tests working).
func GetLogger() *logrus.Logger {
	if logger == nil {
		InitLogger(logrus.InfoLevel)
	}
	return logger
}

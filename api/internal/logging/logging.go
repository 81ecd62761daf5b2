package logging

import (
	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func InitLogger(level logrus.Level) {
	logger = logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func GetLogger() *logrus.Logger {
	if logger == nil {
		InitLogger(logrus.InfoLevel)
	}
	return logger
}

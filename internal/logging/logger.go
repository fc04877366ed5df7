package logging

import (
	"github.com/sirupsen/logrus"
)

// New builds the shared application logger. Production emits JSON lines;
// everything else keeps the human-readable text formatter.
func New(level, appEnv string) *logrus.Logger {
	log := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	if appEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

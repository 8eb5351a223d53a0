package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"go.elastic.co/ecslogrus"
)

// LOG_LEVEL Env variable holding a logrus level name ("debug", "warn", ...)
const LOG_LEVEL = "LOG_LEVEL"

var (
	mu sync.Mutex
	// Every logger built so far, so that a level read late (from a .env file) reaches all of them
	built []*logrus.Logger
)

// Build Build a new instance
func Build() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&ecslogrus.Formatter{})
	log.SetOutput(os.Stderr)
	applyLevel(log)

	mu.Lock()
	built = append(built, log)
	mu.Unlock()
	return log
}

// ReloadLevel Read LOG_LEVEL again and apply it to every logger built so far.
// Package loggers are built at init, before a .env file can be loaded
func ReloadLevel() {
	mu.Lock()
	defer mu.Unlock()
	for _, log := range built {
		applyLevel(log)
	}
}

// An unknown level name silently keeps the current one (info by default)
func applyLevel(log *logrus.Logger) {
	if lvl, err := logrus.ParseLevel(os.Getenv(LOG_LEVEL)); err == nil {
		log.SetLevel(lvl)
	}
}

// Package logging sets up the structured logger every other package logs
// through via a *logrus.Entry.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a root logger at the given level name (debug, info, warn,
// error; anything unrecognized falls back to info) writing text-formatted
// entries to stderr with full timestamps, and returns it as a base Entry so
// callers can attach fields (remote_addr, component, ...) without mutating
// shared logger state.
func New(levelName string) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return logrus.NewEntry(log)
}

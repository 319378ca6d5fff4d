package core

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	logMu     sync.Mutex
	singleton *log.Logger
)

// getLogger lazily builds the process logger. Until InitLogging runs,
// output goes to stderr, which is only safe before the screen is up
func getLogger() *log.Logger {
	logMu.Lock()
	defer logMu.Unlock()

	if singleton == nil {
		singleton = newLogger(os.Stderr, log.InfoLevel)
	}
	return singleton
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "script-fighter",
	})
	l.SetLevel(level)
	return l
}

// InitLogging redirects log output, typically to a file once the
// terminal is owned by the game screen. Safe to call more than once
func InitLogging(path string, levelName string) error {
	level, err := log.ParseLevel(levelName)
	if err != nil {
		level = log.InfoLevel
	}

	w := io.Writer(os.Stderr)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		w = f
	}

	logMu.Lock()
	singleton = newLogger(w, level)
	logMu.Unlock()
	return nil
}

func LogDebug(msg string, args ...any) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...any) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...any) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...any) {
	getLogger().Errorf(msg, args...)
}

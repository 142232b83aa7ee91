// Package logging builds the logrus loggers used by the TUI and the CLI
// commands and turns profile store events into structured log lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/studiowebux/keydeck/internal/profile"
)

// New returns a text logger writing to out at the given level
func New(out io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger, nil
}

// OpenFile returns a logger appending to path. The TUI owns the terminal,
// so it never logs to stderr. Close the returned file on exit.
func OpenFile(path, level string) (*logrus.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// Checker verifies store consistency after each event at debug level
type Checker interface {
	CheckConsistency() error
}

// StoreListener logs every store event with profile, kind and detail
// fields. When check is set and debug logging is on, the registry mirror
// of every profile is verified after each event.
func StoreListener(log logrus.FieldLogger, check Checker) profile.Listener {
	return func(ev profile.Event) {
		entry := log.WithFields(logrus.Fields{
			"profile": ev.Profile,
			"kind":    string(ev.Kind),
			"detail":  ev.Detail,
		})
		if ev.Intent != "" {
			entry = entry.WithField("intent", string(ev.Intent))
		}

		switch {
		case ev.Kind == profile.EventIntentRejected:
			entry.WithError(ev.Err).Info("intent rejected")
		case ev.Err != nil:
			entry.WithError(ev.Err).Warn("store event")
		default:
			entry.Info("store event")
		}

		if check == nil || !debugEnabled(log) {
			return
		}
		if err := check.CheckConsistency(); err != nil {
			entry.WithError(err).Error("registry mirror broken")
		}
	}
}

func debugEnabled(log logrus.FieldLogger) bool {
	switch l := log.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.DebugLevel)
	}
	return false
}

package model

import (
	"errors"
	"testing"
)

func TestDiscardLoggerWorksAsIntended(t *testing.T) {
	logger := DiscardLogger
	logger.Debug("foo")
	logger.Debugf("%s", "foo")
	logger.Info("foo")
	logger.Infof("%s", "foo")
	logger.Warn("foo")
	logger.Warnf("%s", "foo")
}

func TestErrorToStringOrOK(t *testing.T) {
	t.Run("with nil error", func(t *testing.T) {
		if v := ErrorToStringOrOK(nil); v != "ok" {
			t.Fatal("unexpected value", v)
		}
	})

	t.Run("with non-nil error", func(t *testing.T) {
		if v := ErrorToStringOrOK(errors.New("antani")); v != "antani" {
			t.Fatal("unexpected value", v)
		}
	})
}

func TestValidLoggerOrDefault(t *testing.T) {
	t.Run("with nil logger", func(t *testing.T) {
		if logger := ValidLoggerOrDefault(nil); logger != DiscardLogger {
			t.Fatal("expected the discard logger")
		}
	})

	t.Run("with non-nil logger", func(t *testing.T) {
		logger := DiscardLogger
		if got := ValidLoggerOrDefault(logger); got != logger {
			t.Fatal("expected the same logger")
		}
	})
}

package logging

import (
	"log/slog"
	"testing"
)

func TestNew_DebugFlagLowersLevel(t *testing.T) {
	log := New(slog.LevelInfo, true)
	if log == nil {
		t.Fatal("New returned nil")
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	log := Nop()
	log.Debug("test")
	log.Info("test")
	log.Warn("test")
	log.Error("test")
}

func TestWith_ReturnsDistinctLogger(t *testing.T) {
	base := Nop()
	derived := base.With("key", "value")

	if derived == base {
		t.Fatal("With should return a new Logger, not the same instance")
	}
}

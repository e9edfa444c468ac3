package logger

import "testing"

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud"); err == nil {
		t.Fatalf("expected unknown level to fail")
	}
}

func TestNewAcceptsLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		l, err := New(level)
		if err != nil {
			t.Fatalf("new logger at %s: %v", level, err)
		}
		l.Named("test").Debugw("probe", "level", level)
	}
}

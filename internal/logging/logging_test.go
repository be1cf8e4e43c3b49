package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/keywarden/internal/logging"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelWarn, Output: &buf})

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown warn")
	logger.Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low-level messages should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown warn") || !strings.Contains(out, "shown error") {
		t.Errorf("warn and error should be written: %s", out)
	}
}

func TestFormatArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf, Prefix: "keywarden"})

	logger.Info("registered handler %q", "grid_mode")

	out := buf.String()
	if !strings.Contains(out, `registered handler "grid_mode"`) {
		t.Errorf("printf args not applied: %s", out)
	}
	if !strings.Contains(out, "keywarden:") {
		t.Errorf("prefix missing: %s", out)
	}
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("level tag missing: %s", out)
	}
}

func TestWithComponentField(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})

	logger.WithComponent("registry").Info("cleared")

	if !strings.Contains(buf.String(), "component=registry") {
		t.Errorf("component field missing: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"INFO":    logging.LevelInfo,
		"warning": logging.LevelWarn,
		"error":   logging.LevelError,
		"bogus":   logging.LevelInfo,
	}
	for in, want := range cases {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNullDiscards(t *testing.T) {
	// Must not panic despite the zero-value internals.
	logging.Null.Info("dropped")
	logging.Null.WithComponent("x").Error("dropped")
}

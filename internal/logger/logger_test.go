package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_DefaultLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf})

	log.Debug().Msg("hidden")
	log.Info().Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("expected debug message to be filtered at info level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("expected info message in output")
	}
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Output: &buf})

	log.Debug().Msg("debug line")

	if !strings.Contains(buf.String(), "debug line") {
		t.Error("expected debug message at debug level")
	}
}

func TestNew_ErrorLevelFiltersWarn(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "error", Output: &buf})

	log.Warn().Msg("warn line")
	log.Error().Msg("error line")

	out := buf.String()
	if strings.Contains(out, "warn line") {
		t.Error("expected warn message to be filtered at error level")
	}
	if !strings.Contains(out, "error line") {
		t.Error("expected error message in output")
	}
}

func TestNew_ServiceFieldPresent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf})

	log.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"service":"intellidoc"`) {
		t.Errorf("expected service field in output, got %q", buf.String())
	}
}

func TestNop_DiscardsOutput(t *testing.T) {
	log := Nop()
	log.Error().Msg("nothing")
	// No panic, no output; Nop loggers are safe to pass everywhere.
}

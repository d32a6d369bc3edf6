package logutil

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelTrace)
	logger.Log(t.Context(), LevelTrace, "aggregate dispatched", "op", "axpy")

	out := buf.String()
	if !strings.Contains(out, "level=TRACE") {
		t.Errorf("erwartet level=TRACE, bekommen %q", out)
	}
	if !strings.Contains(out, "source=logutil_test.go:") {
		t.Errorf("erwartet kurze Quellangabe, bekommen %q", out)
	}
}

func TestNewLoggerInfoFiltersTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)
	logger.Log(t.Context(), LevelTrace, "hidden")
	logger.Info("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("TRACE sollte bei INFO gefiltert werden: %q", out)
	}
	if !strings.Contains(out, "visible") || strings.Contains(out, "source=") {
		t.Errorf("INFO ohne Quellangabe erwartet, bekommen %q", out)
	}
}

package simlog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerWritesToFile(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := slog.New(h)

	log.Info("engine started", "base", "3000")

	out := buf.String()
	if !strings.Contains(out, "engine started") {
		t.Errorf("log output %q missing message", out)
	}
	if !strings.Contains(out, "INFO:") {
		t.Errorf("log output %q missing level", out)
	}
}

func TestHandlerWithAttrsCarriesThrough(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)
	log := slog.New(h).With("session", "1")

	log.Warn("trap vector unmapped")

	if !strings.Contains(buf.String(), "session=1") {
		t.Errorf("log output %q missing attribute from With", buf.String())
	}
}

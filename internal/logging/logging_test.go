package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("warn", &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	log.Debug().Msg("hidden detail")
	log.Warn().Str("table", "tasks").Msg("visible warning")

	out := buf.String()
	if strings.Contains(out, "hidden detail") {
		t.Errorf("debug message should be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "visible warning") {
		t.Errorf("expected warn message in output, got %q", out)
	}
	if !strings.Contains(out, "table=tasks") {
		t.Errorf("expected structured field in output, got %q", out)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("chatty", &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

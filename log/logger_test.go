package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)

	logger := New("test-filter")
	SetLevel(Warning)
	logger.Info("hidden")
	logger.Warningf("shown %d", 42)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info message to be filtered; got %q", out)
	}
	if !strings.Contains(out, "shown 42") || !strings.Contains(out, "[test-filter]") {
		t.Fatalf("expected warning message with module name; got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color escapes for non-terminal sink; got %q", out)
	}
}

func TestModuleLevel(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)

	SetLevel(Error)
	SetModuleLevel("test-chatty", Debug)
	New("test-chatty").Debug("chatty")
	New("test-quiet").Debug("quiet")

	out := buf.String()
	if !strings.Contains(out, "chatty") || strings.Contains(out, "quiet") {
		t.Fatalf("expected only the chatty module to log; got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	specs := map[string]Level{
		"debug":   Debug,
		"INFO":    Info,
		"notice":  Notice,
		"warning": Warning,
		"error":   Error,
	}
	for name, exp := range specs {
		got, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("[%s] unexpected error: %v", name, err)
		}
		if got != exp {
			t.Fatalf("[%s] expected level %d; got %d", name, exp, got)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestVerboseToggle(t *testing.T) {
	defer reset()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be off by default")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be on after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be off after SetVerbose(false)")
	}
}

func TestDebug(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("compiled pattern %q", "hel+o")

	if got := buf.String(); got != "[DEBUG] compiled pattern \"hel+o\"\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestDebug_Silent(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("searching %s", "OEBPS/ch1.xhtml")

	if buf.Len() > 0 {
		t.Errorf("expected no output when verbose is off, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Scope")

	if got := buf.String(); got != "\n=== Scope ===\n" {
		t.Errorf("unexpected section output: %q", got)
	}
}

func TestInfoAndWarn(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("replaced %d occurrences", 3)
	Warn("document %s has unsaved changes", "main.css")

	out := buf.String()
	if !strings.Contains(out, "[INFO] replaced 3 occurrences\n") {
		t.Errorf("missing info line in %q", out)
	}
	if !strings.Contains(out, "[WARN] document main.css has unsaved changes\n") {
		t.Errorf("missing warn line in %q", out)
	}
}

func TestConcurrentUse(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			SetVerbose(true)
			Debug("worker %d", n)
			IsVerbose()
			SetVerbose(false)
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

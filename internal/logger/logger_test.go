package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_CreatesLogDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	if err := Init(Config{Dir: dir}); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("log dir not created: %v", err)
	}

	Info("hello", "k", "v")
	Debug("dropped below info level")
	Warn("warned")
	Error("failed")
}

func TestInit_WriterReceivesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Writer: &buf}); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	Warn("skipped record", "id", "42")
	Debug("not at debug level")

	out := buf.String()
	if !strings.Contains(out, "skipped record") || !strings.Contains(out, "id=42") {
		t.Fatalf("log output = %q, want message and id=42", out)
	}
	if strings.Contains(out, "not at debug level") {
		t.Fatalf("debug message logged at info level: %q", out)
	}
}

func TestPath(t *testing.T) {
	if got := Path("/var/log/fitlog"); got != filepath.Join("/var/log/fitlog", FileName) {
		t.Fatalf("Path = %q", got)
	}
}

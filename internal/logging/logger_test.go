package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bloyl/fsl-mrs/internal/config"
	"github.com/bloyl/fsl-mrs/internal/logging"
)

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("wrote output", "path", "merged.nmrs", "shape", "(1, 1, 1, 2048, 8)")
	line := buf.String()
	if !strings.Contains(line, " INFO wrote output") {
		t.Fatalf("line %q missing level and message", line)
	}
	if !strings.Contains(line, "path=merged.nmrs") {
		t.Fatalf("line %q missing attribute", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Fatalf("line %q not newline terminated", line)
	}
}

func TestConsoleLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("suppressed levels leaked: %q", out)
	}
	if !strings.Contains(out, "WARN visible") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestConsoleGroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.WithGroup("journal").With("db", "journal.db").Info("appended", "op", "merge")
	line := buf.String()
	if !strings.Contains(line, "journal.db=journal.db") {
		t.Fatalf("grouped attr missing: %q", line)
	}
	if !strings.Contains(line, "journal.op=merge") {
		t.Fatalf("grouped record attr missing: %q", line)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("wrote output", "path", "merged.nmrs")
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if decoded["msg"] != "wrote output" || decoded["path"] != "merged.nmrs" {
		t.Fatalf("decoded = %v", decoded)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("unknown format accepted")
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	if _, err := logging.NewFromConfig(&cfg); err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if _, err := logging.NewFromConfig(nil); err != nil {
		t.Fatalf("NewFromConfig(nil): %v", err)
	}
}

package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"qrcmigrate/internal/config"
	"qrcmigrate/internal/logging"
)

func boolPtr(v bool) *bool { return &v }

func TestNewFromConfigDefaults(t *testing.T) {
	cfg := config.Default()
	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("expected warn-level output, got %q", out)
	}

	logger, err = logging.NewFromConfig(nil, nil)
	if err != nil || logger == nil {
		t.Fatalf("NewFromConfig(nil) = %v, %v", logger, err)
	}
}

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "updater")
	logger.Info("file entry added",
		logging.String(logging.FieldPath, "/tmp/migrations.qrc"),
		logging.String("file", "a b.sql"),
		logging.Int("group_index", 0),
	)

	line := buf.String()
	for _, want := range []string{"INFO updater: file entry added", "path=/tmp/migrations.qrc", `file="a b.sql"`, "group_index=0"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should render as prefix, got %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("expected no color for non-terminal output, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")

	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerColor(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Output: &buf, Color: boolPtr(true)})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("no matching group", logging.String(logging.FieldPrefix, "/"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "\x1b[33mWARN\x1b[0m") {
		t.Fatalf("expected colored WARN label, got %q", out)
	}
}

func TestJSONLoggerShape(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Error("write failed", logging.Error(errors.New("disk full")), logging.Bool("atomic", true))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if record["level"] != "error" {
		t.Fatalf("unexpected level %v", record["level"])
	}
	if record["msg"] != "write failed" {
		t.Fatalf("unexpected msg %v", record["msg"])
	}
	if record["error"] != "disk full" {
		t.Fatalf("unexpected error %v", record["error"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(t.Context(), 100) {
		t.Fatal("nop logger should not be enabled")
	}
	logger.Error("ignored")
}

func TestConsoleLoggerBoundAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logger.With(logging.String(logging.FieldRunID, "run-1"))
	logger = logging.NewComponentLogger(logger, "updater")
	logger.WithGroup("group").Info("matched",
		logging.Int("index", 2),
		slog.Group("stats", logging.Int("files", 3)),
	)

	line := buf.String()
	for _, want := range []string{"INFO updater: matched", "run_id=run-1", "group.index=2", "group.stats.files=3"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Index(line, "run_id=") > strings.Index(line, "group.index=") {
		t.Fatalf("bound attrs should precede record attrs, got %q", line)
	}
}

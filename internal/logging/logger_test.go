package logging_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"assetmirror/internal/config"
	"assetmirror/internal/logging"
	"assetmirror/internal/services"
)

func TestNewFromConfigWritesRunLog(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, logPath, closer, err := logging.NewFromConfig(&cfg, "0123456789abcdef", io.Discard, false)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	defer closer.Close()

	if filepath.Dir(logPath) != cfg.Paths.LogDir {
		t.Fatalf("unexpected log path %q", logPath)
	}
	if !strings.HasSuffix(logPath, "-01234567.log") {
		t.Fatalf("expected short run id in log name, got %q", logPath)
	}
	logger.Info("scan started", logging.String("stage", "scan"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"run_id":"0123456789abcdef"`) {
		t.Fatalf("expected run id in file log, got %q", content)
	}
	if !strings.Contains(string(content), `"msg":"scan started"`) {
		t.Fatalf("expected message in file log, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := logging.New(logging.Options{Format: "console", Level: "info", Console: &buf, RunID: "run-1"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "reconcile").Info("message without caller", logging.Int("moved", 2))

	out := buf.String()
	if strings.Contains(out, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", out)
	}
	if !strings.Contains(out, "reconcile: message without caller") {
		t.Fatalf("expected component prefix, got %q", out)
	}
	if !strings.Contains(out, "moved=2") {
		t.Fatalf("expected attribute, got %q", out)
	}
	if strings.Contains(out, "run_id") {
		t.Fatalf("expected run id to stay out of console output, got %q", out)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := logging.New(logging.Options{Format: "console", Level: "debug", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleColor(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := logging.New(logging.Options{Format: "console", Console: &buf, Color: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("colored")
	if !strings.Contains(buf.String(), "\x1b[33mWARN") {
		t.Fatalf("expected ANSI warn label, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := logging.New(logging.Options{Format: "json", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "duplicate asset folder", "relocate_duplicate",
		logging.String(logging.FieldImpact, "second folder left in place"),
	)
	out := buf.String()
	for _, fragment := range []string{
		`"event_type":"relocate_duplicate"`,
		`"error_hint":"check logs for details"`,
		`"impact":"second folder left in place"`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %s in %s", fragment, out)
		}
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithAssetID(ctx, 123)
	ctx = services.WithStage(ctx, "scan")
	ctx = services.WithCategory(ctx, "Brick")

	var buf bytes.Buffer
	logger, _, err := logging.New(logging.Options{Format: "json", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WithContext(ctx, logger).Info("contextual log")

	out := buf.String()
	for _, fragment := range []string{`"asset_id":123`, `"stage":"scan"`, `"category":"Brick"`} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %s in %s", fragment, out)
		}
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, logging.RunLogName(time.Now().AddDate(0, 0, -40), "old"))
	fresh := filepath.Join(dir, logging.RunLogName(time.Now(), "new"))
	other := filepath.Join(dir, "notes.txt")
	for _, path := range []string{old, fresh, other} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	past := time.Now().AddDate(0, 0, -40)
	for _, path := range []string{old, other} {
		if err := os.Chtimes(path, past, past); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}

	logging.CleanupOldLogs(logging.NewNop(), 30, logging.RetentionTarget{Dir: dir, Pattern: logging.RunLogPattern, Exclude: []string{fresh}})

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected old run log removed, stat err=%v", err)
	}
	for _, path := range []string{fresh, other} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s kept: %v", path, err)
		}
	}
}

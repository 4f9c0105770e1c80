package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/fileset-compare/internal/models"
)

func TestNewFileLogger(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	fl, err := NewFileLogger(logDir, "debug")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer fl.Close()

	if _, err := os.Stat(fl.RunFile()); err != nil {
		t.Fatalf("run log not created: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(fl.RunFile()), "run-") {
		t.Errorf("unexpected run log name %q", fl.RunFile())
	}

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("latest.log symlink missing: %v", err)
	}
	if target != filepath.Base(fl.RunFile()) {
		t.Errorf("latest.log -> %q, want %q", target, filepath.Base(fl.RunFile()))
	}
}

func TestFileLoggerReplacesLatestSymlink(t *testing.T) {
	logDir := t.TempDir()
	if err := os.Symlink("run-old.log", filepath.Join(logDir, "latest.log")); err != nil {
		t.Fatalf("failed to create old symlink: %v", err)
	}

	fl, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer fl.Close()

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("Readlink() error = %v", err)
	}
	if target == "run-old.log" {
		t.Error("latest.log still points at the old run")
	}
}

func TestFileLoggerWritesMessages(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	fl.LogDebug("filtered out")
	fl.LogInfo("scanning deploy/kubernetes")
	fl.LogWarn("skipping deploy/missing")
	fl.LogCollected(models.DirectorySummary{Label: "deploy/kubernetes", Name: "kubernetes", Collected: 3})
	fl.LogSummary(&models.Comparison{TotalKeys: 3}, 20*time.Millisecond)

	if err := fl.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Writing after Close is a silent no-op
	fl.LogError("after close")

	data, err := os.ReadFile(fl.RunFile())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"=== fileset-compare Run Log ===",
		"[INFO] scanning deploy/kubernetes",
		"[WARN] skipping deploy/missing",
		"Collected 3 files from: kubernetes (deploy/kubernetes)",
		"=== COMPARISON SUMMARY ===",
		"Unique keys:  3",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in run log:\n%s", want, content)
		}
	}
	for _, unwanted := range []string{"filtered out", "after close"} {
		if strings.Contains(content, unwanted) {
			t.Errorf("did not expect %q in run log", unwanted)
		}
	}
}

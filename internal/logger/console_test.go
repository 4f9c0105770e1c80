package logger

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/harrison/fileset-compare/internal/models"
)

var timestampPattern = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] `)

func sampleComparison() *models.Comparison {
	return &models.Comparison{
		Directories: []models.DirectorySummary{
			{Label: "deploy/kubernetes", Name: "kubernetes", Collected: 2},
			{Label: "deploy/nomad", Name: "nomad", Collected: 1},
		},
		Categories: []models.Category{
			{Labels: []string{"deploy/kubernetes"}, Keys: []string{"auth-service"}},
			{Labels: []string{"deploy/kubernetes", "deploy/nomad"}, Keys: []string{"api-gateway"}},
		},
		TotalKeys: 2,
	}
}

// TestNewConsoleLogger verifies the constructor creates a ConsoleLogger with the provided writer.
func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewConsoleLogger(buf, "debug")

		if logger.writer != buf {
			t.Error("writer not set correctly")
		}
		if logger.logLevel != "debug" {
			t.Errorf("expected log level %q, got %q", "debug", logger.logLevel)
		}
		if logger.colorOutput {
			t.Error("color should be disabled for non-terminal writers")
		}
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		logger := NewConsoleLogger(&bytes.Buffer{}, "loud")
		if logger.logLevel != "info" {
			t.Errorf("expected info, got %q", logger.logLevel)
		}
	})

	t.Run("with nil writer", func(t *testing.T) {
		logger := NewConsoleLogger(nil, "info")
		logger.LogError("dropped")
		logger.LogCollected(models.DirectorySummary{Name: "x"})
		logger.LogSummary(sampleComparison(), time.Second)
	})
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		wantLines []string
		skipLines []string
	}{
		{level: "trace", wantLines: []string{"[TRACE] t", "[DEBUG] d", "[INFO] i", "[WARN] w", "[ERROR] e"}},
		{level: "info", wantLines: []string{"[INFO] i", "[WARN] w", "[ERROR] e"}, skipLines: []string{"[TRACE]", "[DEBUG]"}},
		{level: "warn", wantLines: []string{"[WARN] w", "[ERROR] e"}, skipLines: []string{"[INFO]", "[DEBUG]"}},
		{level: "ERROR", wantLines: []string{"[ERROR] e"}, skipLines: []string{"[WARN]"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.level)

			logger.LogTrace("t")
			logger.LogDebug("d")
			logger.LogInfo("i")
			logger.LogWarn("w")
			logger.LogError("e")

			output := buf.String()
			for _, want := range tt.wantLines {
				if !strings.Contains(output, want) {
					t.Errorf("expected %q in output:\n%s", want, output)
				}
			}
			for _, skip := range tt.skipLines {
				if strings.Contains(output, skip) {
					t.Errorf("did not expect %q in output:\n%s", skip, output)
				}
			}
			for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
				if !timestampPattern.MatchString(line) {
					t.Errorf("line missing timestamp prefix: %q", line)
				}
			}
		})
	}
}

func TestConsoleLoggerLogCollected(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogCollected(models.DirectorySummary{Label: "deploy/nomad", Name: "nomad", Collected: 7})

	if !strings.Contains(buf.String(), "Collected 7 files from: nomad") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	quiet := NewConsoleLogger(buf, "warn")
	quiet.LogCollected(models.DirectorySummary{Name: "nomad"})
	if buf.Len() != 0 {
		t.Errorf("expected no output at warn level, got %q", buf.String())
	}
}

func TestConsoleLoggerLogSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	result := sampleComparison()
	result.Collisions = []models.Collision{{Label: "deploy/kubernetes", Key: "api", Names: []string{"api", "api_"}}}
	logger.LogSummary(result, 1500*time.Millisecond)

	output := buf.String()
	for _, want := range []string{
		"=== Comparison Summary ===",
		"Directories: 2",
		"Unique keys: 2",
		"Categories: 2",
		"Collisions: 1",
		"Duration: 1s",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in summary:\n%s", want, output)
		}
	}
}

func TestConsoleLoggerSetColor(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")
	logger.SetColor(true)

	if !logger.colorOutput {
		t.Error("SetColor(true) did not enable color")
	}
	logger.SetColor(false)
	logger.LogWarn("plain")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("unexpected ANSI codes: %q", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m30s"},
		{2 * time.Minute, "2m"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestMultiLogger(t *testing.T) {
	a := &bytes.Buffer{}
	b := &bytes.Buffer{}
	multi := NewMultiLogger(NewConsoleLogger(a, "debug"), nil, NewConsoleLogger(b, "warn"))

	multi.LogDebug("scan started")
	multi.LogWarn("skipped dir")
	multi.LogCollected(models.DirectorySummary{Name: "k8s", Collected: 1})

	if !strings.Contains(a.String(), "scan started") || !strings.Contains(a.String(), "skipped dir") {
		t.Errorf("first logger missing messages: %q", a.String())
	}
	if strings.Contains(b.String(), "scan started") {
		t.Errorf("second logger should filter debug: %q", b.String())
	}
	if !strings.Contains(b.String(), "skipped dir") {
		t.Errorf("second logger missing warning: %q", b.String())
	}
	if !strings.Contains(a.String(), "Collected 1 files from: k8s") {
		t.Errorf("first logger missing collection line: %q", a.String())
	}
}

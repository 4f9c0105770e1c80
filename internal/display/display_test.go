package display

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/harrison/fileset-compare/internal/models"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestWarningDisplay(t *testing.T) {
	tests := []struct {
		name     string
		warning  Warning
		contains []string
		absent   []string
	}{
		{
			name:     "title only",
			warning:  Warning{Title: "Something happened"},
			contains: []string{"Warning: Something happened\n"},
			absent:   []string{"Suggestion", "Affected"},
		},
		{
			name: "single file",
			warning: Warning{
				Title: "One file",
				Files: []string{"a.yaml"},
			},
			contains: []string{"Affected file:\n", "1. a.yaml"},
		},
		{
			name: "all fields",
			warning: Warning{
				Title:      "Full",
				Message:    "details here",
				Files:      []string{"a.yaml", "b.yaml"},
				Suggestion: "fix it",
			},
			contains: []string{"    details here\n", "Affected files:\n", "      2. b.yaml\n", "    Suggestion:\n    fix it\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.warning.Display(&buf)
			output := buf.String()

			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("expected %q in output:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(output, unwanted) {
					t.Errorf("did not expect %q in output:\n%s", unwanted, output)
				}
			}
			if strings.Contains(output, "\x1b[") {
				t.Errorf("expected no ANSI codes with NoColor set: %q", output)
			}
		})
	}
}

func TestWarnSkippedDirectory(t *testing.T) {
	w := WarnSkippedDirectory(models.NewCollectionError("deploy/swarm", models.ReasonNotFound, nil))

	if w.Title != "Skipping deploy/swarm (directory not found)" {
		t.Errorf("Title = %q", w.Title)
	}
	if w.Message != "" {
		t.Errorf("Message = %q, want empty", w.Message)
	}

	withCause := WarnSkippedDirectory(models.NewCollectionError("deploy/locked", models.ReasonUnreadable, errors.New("permission denied")))
	if withCause.Message != "permission denied" {
		t.Errorf("Message = %q", withCause.Message)
	}
}

func TestWarnEmptyKeys(t *testing.T) {
	w := WarnEmptyKeys("k8s", []string{"-prod", "-staging"})

	if !strings.Contains(w.Title, "2 name(s) in k8s") {
		t.Errorf("Title = %q", w.Title)
	}
	if len(w.Files) != 2 {
		t.Errorf("Files = %v", w.Files)
	}
}

func TestWarnWalkErrors(t *testing.T) {
	w := WarnWalkErrors("k8s", []error{errors.New("error accessing k8s/locked: permission denied")})

	if len(w.Files) != 1 || !strings.Contains(w.Files[0], "permission denied") {
		t.Errorf("Files = %v", w.Files)
	}
}

func TestWarnReportBusy(t *testing.T) {
	var buf bytes.Buffer
	WarnReportBusy("out/report.md", "out/report.md.lock").Display(&buf)

	out := buf.String()
	if !strings.Contains(out, "Warning: out/report.md is being written by another run") {
		t.Errorf("missing title: %q", out)
	}
	if !strings.Contains(out, "out/report.md.lock") {
		t.Errorf("missing lock path: %q", out)
	}
}

func TestProgressIndicator(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressIndicator(&buf, 2)

	p.Start()
	p.Step("deploy/kubernetes")
	p.Step("deploy/nomad")
	p.Complete()

	want := "Scanning 2 directories:\n" +
		"  [1/2] deploy/kubernetes\n" +
		"  [2/2] deploy/nomad\n" +
		"✓ Scanned 2 directories\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

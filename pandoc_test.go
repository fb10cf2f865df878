package mmd2pdf

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

// recordingRunner captures every invocation without executing anything.
type recordingRunner struct {
	mu     sync.Mutex
	called [][]string
	stderr string
	err    error
}

var _ CommandRunner = (*recordingRunner)(nil)

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	r.mu.Lock()
	r.called = append(r.called, append([]string{name}, args...))
	r.mu.Unlock()
	return "", r.stderr, r.err
}

func (r *recordingRunner) lastCall() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.called) == 0 {
		return nil
	}
	return r.called[len(r.called)-1]
}

func TestPandocConverter_ToPDF(t *testing.T) {
	t.Parallel()

	t.Run("empty markdown rejected", func(t *testing.T) {
		t.Parallel()
		c := &PandocConverter{Runner: &recordingRunner{}}
		err := c.ToPDF(context.Background(), "", "out.pdf")
		if !errors.Is(err, ErrEmptyMarkdown) {
			t.Errorf("ToPDF(\"\") = %v, want ErrEmptyMarkdown", err)
		}
	})

	t.Run("invokes pandoc with xelatex flags", func(t *testing.T) {
		t.Parallel()
		runner := &recordingRunner{}
		c := &PandocConverter{Runner: runner, PaperSize: "letter", Margin: "2cm"}

		if err := c.ToPDF(context.Background(), "# Hi", "/tmp/out.pdf"); err != nil {
			t.Fatalf("ToPDF() = %v", err)
		}

		call := runner.lastCall()
		if call == nil {
			t.Fatal("pandoc never invoked")
		}
		if call[0] != "pandoc" {
			t.Errorf("binary = %q, want pandoc", call[0])
		}
		joined := strings.Join(call, " ")
		for _, want := range []string{
			"-o /tmp/out.pdf",
			"--pdf-engine=xelatex",
			"--standalone",
			"geometry:margin=2cm",
			"documentclass:article",
			"papersize:letter",
		} {
			if !strings.Contains(joined, want) {
				t.Errorf("invocation %q lacks %q", joined, want)
			}
		}
	})

	t.Run("defaults applied when unset", func(t *testing.T) {
		t.Parallel()
		runner := &recordingRunner{}
		c := &PandocConverter{Runner: runner}

		if err := c.ToPDF(context.Background(), "# Hi", "out.pdf"); err != nil {
			t.Fatalf("ToPDF() = %v", err)
		}

		joined := strings.Join(runner.lastCall(), " ")
		if !strings.Contains(joined, "papersize:a4") {
			t.Errorf("invocation %q lacks default paper size", joined)
		}
		if !strings.Contains(joined, "geometry:margin=1in") {
			t.Errorf("invocation %q lacks default margin", joined)
		}
	})

	t.Run("failure surfaces stderr", func(t *testing.T) {
		t.Parallel()
		runner := &recordingRunner{
			stderr: "! LaTeX Error: File not found.",
			err:    errors.New("exit status 43"),
		}
		c := &PandocConverter{Runner: runner}

		err := c.ToPDF(context.Background(), "# Hi", "out.pdf")
		if !errors.Is(err, ErrPDFGeneration) {
			t.Fatalf("ToPDF() = %v, want ErrPDFGeneration", err)
		}
		if !strings.Contains(err.Error(), "LaTeX Error") {
			t.Errorf("error %q should surface pandoc stderr", err)
		}
	})

	t.Run("failure without stderr keeps cause", func(t *testing.T) {
		t.Parallel()
		runner := &recordingRunner{err: errors.New("signal: killed")}
		c := &PandocConverter{Runner: runner}

		err := c.ToPDF(context.Background(), "# Hi", "out.pdf")
		if !errors.Is(err, ErrPDFGeneration) {
			t.Fatalf("ToPDF() = %v, want ErrPDFGeneration", err)
		}
		if !strings.Contains(err.Error(), "signal: killed") {
			t.Errorf("error %q should keep the runner error", err)
		}
	})
}

func TestNewPandocConverter_Defaults(t *testing.T) {
	t.Parallel()

	c := NewPandocConverter()
	if c.PaperSize != DefaultPaperSize {
		t.Errorf("PaperSize = %q, want %q", c.PaperSize, DefaultPaperSize)
	}
	if c.Margin != DefaultMargin {
		t.Errorf("Margin = %q, want %q", c.Margin, DefaultMargin)
	}
	if c.Runner == nil {
		t.Error("Runner not initialized")
	}
}

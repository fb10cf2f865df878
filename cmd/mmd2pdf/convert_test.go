package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	mmd2pdf "github.com/alnah/go-mmd2pdf"
	"github.com/alnah/go-mmd2pdf/internal/config"
)

func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &Environment{
		Now:    time.Now,
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func TestResolvePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		htmlOnly bool
		wantIn   string
		wantOut  string
		wantErr  error
	}{
		{
			name:    "derives pdf output",
			args:    []string{"doc.md"},
			wantIn:  "doc.md",
			wantOut: "doc.pdf",
		},
		{
			name:     "derives html output",
			args:     []string{"doc.md"},
			htmlOnly: true,
			wantIn:   "doc.md",
			wantOut:  "doc.html",
		},
		{
			name:    "explicit output",
			args:    []string{"doc.md", "report.pdf"},
			wantIn:  "doc.md",
			wantOut: "report.pdf",
		},
		{
			name:    "nested input",
			args:    []string{"docs/notes.markdown"},
			wantIn:  "docs/notes.markdown",
			wantOut: "docs/notes.pdf",
		},
		{
			name:    "no args",
			args:    nil,
			wantErr: ErrInvalidArgs,
		},
		{
			name:    "too many args",
			args:    []string{"a.md", "b.pdf", "c"},
			wantErr: ErrInvalidArgs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in, out, err := resolvePaths(tt.args, tt.htmlOnly)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolvePaths() = %v", err)
			}
			if in != tt.wantIn || out != tt.wantOut {
				t.Errorf("got (%q, %q), want (%q, %q)", in, out, tt.wantIn, tt.wantOut)
			}
		})
	}
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags override config", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{}
		cfg.Render.Theme = "forest"
		cfg.Page.Size = "letter"
		cfg.Workers = 2

		flags := &convertFlags{
			title:   "Report",
			workers: 8,
			render:  renderFlags{theme: "dark", scale: 3, noSandbox: true},
			cache:   cacheFlags{dir: "/tmp/c", disabled: true},
			page:    pageFlags{margin: "2cm"},
		}
		mergeFlags(flags, cfg)

		if cfg.Document.Title != "Report" {
			t.Errorf("Title = %q", cfg.Document.Title)
		}
		if cfg.Workers != 8 {
			t.Errorf("Workers = %d", cfg.Workers)
		}
		if cfg.Render.Theme != "dark" || cfg.Render.Scale != 3 || !cfg.Render.NoSandbox {
			t.Errorf("Render = %+v", cfg.Render)
		}
		if cfg.Cache.Dir != "/tmp/c" || !cfg.Cache.Disabled {
			t.Errorf("Cache = %+v", cfg.Cache)
		}
		if cfg.Page.Size != "letter" {
			t.Errorf("Size = %q, want config value kept", cfg.Page.Size)
		}
		if cfg.Page.Margin != "2cm" {
			t.Errorf("Margin = %q", cfg.Page.Margin)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{}
		cfg.Render.Theme = "neutral"
		cfg.Document.Title = "From Config"

		mergeFlags(&convertFlags{}, cfg)

		if cfg.Render.Theme != "neutral" {
			t.Errorf("Theme = %q", cfg.Render.Theme)
		}
		if cfg.Document.Title != "From Config" {
			t.Errorf("Title = %q", cfg.Document.Title)
		}
	})
}

func TestBuildPipeline(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	cfg.Render.Theme = "dark"

	p, err := buildPipeline(cfg)
	if err != nil {
		t.Fatalf("buildPipeline() = %v", err)
	}
	defer func() { _ = p.Close() }()

	if p.CacheDir() != cfg.Cache.Dir {
		t.Errorf("CacheDir() = %q, want %q", p.CacheDir(), cfg.Cache.Dir)
	}
}

func TestDecorateConvertError(t *testing.T) {
	t.Parallel()

	t.Run("timeout gains hint", func(t *testing.T) {
		t.Parallel()
		err := decorateConvertError(context.DeadlineExceeded, nil)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("lost cause: %v", err)
		}
		if !strings.Contains(err.Error(), "--timeout") {
			t.Errorf("error %q lacks timeout hint", err)
		}
	})

	t.Run("render failure gains hint", func(t *testing.T) {
		t.Parallel()
		err := decorateConvertError(mmd2pdf.ErrRenderFailed, nil)
		if !errors.Is(err, mmd2pdf.ErrRenderFailed) {
			t.Fatalf("lost cause: %v", err)
		}
		if !strings.Contains(err.Error(), "mermaid.live") {
			t.Errorf("error %q lacks render hint", err)
		}
	})

	t.Run("plain error passes through", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("boom")
		if err := decorateConvertError(cause, nil); !errors.Is(err, cause) {
			t.Errorf("got %v", err)
		}
	})
}

func TestRunDispatch(t *testing.T) {
	t.Parallel()

	t.Run("version", func(t *testing.T) {
		t.Parallel()
		env, stdout, _ := testEnv()
		if code := run([]string{"mmd2pdf", "version"}, env); code != ExitSuccess {
			t.Fatalf("run(version) = %d", code)
		}
		if !strings.Contains(stdout.String(), "mmd2pdf") {
			t.Errorf("version output = %q", stdout.String())
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()
		env, stdout, _ := testEnv()
		if code := run([]string{"mmd2pdf", "help"}, env); code != ExitSuccess {
			t.Fatalf("run(help) = %d", code)
		}
		if !strings.Contains(stdout.String(), "Commands:") {
			t.Errorf("help output = %q", stdout.String())
		}
	})

	t.Run("help convert", func(t *testing.T) {
		t.Parallel()
		env, stdout, _ := testEnv()
		if code := run([]string{"mmd2pdf", "help", "convert"}, env); code != ExitSuccess {
			t.Fatalf("run(help convert) = %d", code)
		}
		if !strings.Contains(stdout.String(), "--no-sandbox") {
			t.Errorf("convert help output = %q", stdout.String())
		}
	})

	t.Run("convert without args fails usage", func(t *testing.T) {
		t.Parallel()
		env, _, stderr := testEnv()
		if code := run([]string{"mmd2pdf", "convert"}, env); code != ExitUsage {
			t.Errorf("run(convert) = %d, want %d; stderr: %s", code, ExitUsage, stderr.String())
		}
	})

	t.Run("missing input file fails io", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv()
		if code := run([]string{"mmd2pdf", "convert", "/no/such/doc.md"}, env); code != ExitIO {
			t.Errorf("run(missing input) = %d, want %d", code, ExitIO)
		}
	})
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_FromPath(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "style.yaml", `
document:
  title: Design Notes
render:
  theme: dark
  fontFamily: helvetica
  fontSize: 16px
  scale: 2
  noSandbox: true
cache:
  dir: /tmp/mmd-cache
  disabled: false
page:
  size: letter
  margin: 2cm
workers: 4
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}

	if cfg.Document.Title != "Design Notes" {
		t.Errorf("Title = %q", cfg.Document.Title)
	}
	if cfg.Render.Theme != "dark" || cfg.Render.FontFamily != "helvetica" ||
		cfg.Render.FontSize != "16px" || cfg.Render.Scale != 2 || !cfg.Render.NoSandbox {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Cache.Dir != "/tmp/mmd-cache" || cfg.Cache.Disabled {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Page.Size != "letter" || cfg.Page.Margin != "2cm" {
		t.Errorf("Page = %+v", cfg.Page)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		nameOrPath string
		wantErr    error
	}{
		{name: "empty name", nameOrPath: "", wantErr: ErrEmptyConfigName},
		{name: "missing path", nameOrPath: "/does/not/exist.yaml", wantErr: ErrConfigNotFound},
		{name: "missing name", nameOrPath: "no-such-config-name", wantErr: ErrConfigNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := LoadConfig(tt.nameOrPath); !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig(%q) = %v, want %v", tt.nameOrPath, err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "bad.yaml", "render: [not a map\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
		t.Errorf("LoadConfig() = %v, want ErrConfigParse", err)
	}
}

func TestLoadConfig_UnknownFieldRejected(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "unknown.yaml", "renderr:\n  theme: dark\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
		t.Errorf("LoadConfig() = %v, want ErrConfigParse for unknown field", err)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr error
		anyErr  bool
	}{
		{
			name:    "title too long",
			yaml:    "document:\n  title: " + strings.Repeat("x", MaxTitleLength+1) + "\n",
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "theme too long",
			yaml:    "render:\n  theme: " + strings.Repeat("x", MaxThemeLength+1) + "\n",
			wantErr: ErrFieldTooLong,
		},
		{
			name:   "scale out of range",
			yaml:   "render:\n  scale: 11\n",
			anyErr: true,
		},
		{
			name:   "negative workers",
			yaml:   "workers: -1\n",
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, t.TempDir(), "cfg.yaml", tt.yaml)
			_, err := LoadConfig(path)
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			if tt.anyErr && err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}

func TestLoadConfig_NameResolution(t *testing.T) {
	// Changes working directory; cannot run in parallel.
	dir := t.TempDir()
	writeConfig(t, dir, "style.yml", "render:\n  theme: forest\n")

	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(orig) }()

	cfg, err := LoadConfig("style")
	if err != nil {
		t.Fatalf("LoadConfig(name) = %v", err)
	}
	if cfg.Render.Theme != "forest" {
		t.Errorf("Theme = %q, want forest", cfg.Render.Theme)
	}
}

func TestLoadConfig_NotFoundListsTriedPaths(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig("definitely-missing-config")
	if err == nil {
		t.Fatal("want error")
	}
	if !strings.Contains(err.Error(), "definitely-missing-config.yaml") {
		t.Errorf("error %q should list tried paths", err)
	}
}

func TestConfig_ValidateDefaults(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

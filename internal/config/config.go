// Package config loads and validates YAML configuration for mmd2pdf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mmd2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxTitleLength      = 200  // document title
	MaxThemeLength      = 30   // "default", "dark", "forest", "neutral"
	MaxFontFamilyLength = 100  // font family name
	MaxFontSizeLength   = 10   // "14px"
	MaxPathLength       = 4096 // cache directory
	MaxPaperSizeLength  = 10   // "a4", "letter"
	MaxMarginLength     = 10   // "1in", "2cm"
)

// Config holds all configuration for document conversion.
type Config struct {
	Document DocumentConfig `yaml:"document"`
	Render   RenderConfig   `yaml:"render"`
	Cache    CacheConfig    `yaml:"cache"`
	Page     PageConfig     `yaml:"page"`
	Workers  int            `yaml:"workers"` // render pool size (0 = auto)
}

// DocumentConfig defines document metadata options.
type DocumentConfig struct {
	Title string `yaml:"title"` // optional PDF title (empty = none)
}

// RenderConfig defines diagram styling and engine options.
type RenderConfig struct {
	Theme      string `yaml:"theme"`      // mermaid theme (default: "default")
	FontFamily string `yaml:"fontFamily"` // default: "arial"
	FontSize   string `yaml:"fontSize"`   // default: "14px"
	Scale      int    `yaml:"scale"`      // output scale factor (0 = mmdc default)
	NoSandbox  bool   `yaml:"noSandbox"`  // disable Chromium sandbox (containers/CI)
}

// CacheConfig defines image cache options.
type CacheConfig struct {
	Dir      string `yaml:"dir"`      // empty = ~/.mmd2pdf-cache
	Disabled bool   `yaml:"disabled"` // render into a throwaway directory
}

// PageConfig defines pandoc page layout options.
type PageConfig struct {
	Size   string `yaml:"size"`   // "a4", "letter" (default: "a4")
	Margin string `yaml:"margin"` // e.g. "1in" (default: "1in")
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("document.title", c.Document.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.theme", c.Render.Theme, MaxThemeLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.fontFamily", c.Render.FontFamily, MaxFontFamilyLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.fontSize", c.Render.FontSize, MaxFontSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("cache.dir", c.Cache.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.size", c.Page.Size, MaxPaperSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.margin", c.Page.Margin, MaxMarginLength); err != nil {
		return err
	}

	if c.Render.Scale < 0 || c.Render.Scale > 10 {
		return fmt.Errorf("render.scale: must be between 0 and 10, got %d", c.Render.Scale)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers: must be >= 0, got %d", c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mmd2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-mmd2pdf", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

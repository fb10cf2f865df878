package mmd2pdf

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Default render configuration values, applied when the corresponding
// RenderConfig field is empty.
const (
	DefaultTheme      = "default"
	DefaultFontFamily = "arial"
	DefaultFontSize   = "14px"
)

// RenderConfig holds the styling and engine options applied when a
// diagram is rendered. The set of fields is closed so that cache-key
// canonicalization stays well-defined; two diagrams with identical
// content but different configs are distinct cache entries.
//
// The zero value means "all defaults".
type RenderConfig struct {
	Theme      string `json:"theme,omitempty"`      // mermaid theme: "default", "dark", "forest", "neutral"
	FontFamily string `json:"fontFamily,omitempty"` // e.g. "arial"
	FontSize   string `json:"fontSize,omitempty"`   // e.g. "14px"
	Scale      int    `json:"scale,omitempty"`      // output scale factor (0 = mmdc default)
	NoSandbox  bool   `json:"noSandbox,omitempty"`  // disable the Chromium sandbox (containers/CI)
}

// withDefaults returns a copy with empty fields replaced by defaults.
func (c RenderConfig) withDefaults() RenderConfig {
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.FontFamily == "" {
		c.FontFamily = DefaultFontFamily
	}
	if c.FontSize == "" {
		c.FontSize = DefaultFontSize
	}
	return c
}

// Diagram is one Mermaid diagram extracted from a Markdown document.
//
// Diagrams are immutable values and comparable, so they can be used
// directly as map keys. Identity covers content, position, and render
// config: identical diagrams at different positions stay distinguishable
// for rewriting, while the cache deduplicates on (content, config) alone
// via CacheKey.
type Diagram struct {
	Content      string       // diagram body, fences/tags stripped, outer whitespace trimmed
	StartLine    int          // 1-based first line of the match in the source
	EndLine      int          // 1-based last line of the match in the source
	OriginalText string       // exact matched substring, fences/tags included
	Config       RenderConfig // styling/engine options for this diagram
}

// CacheKey returns the content-addressed cache key for the diagram: a
// SHA-256 digest over the content and the canonical JSON serialization
// of the render config. Line positions never enter the key, so equal
// (content, config) pairs share a key regardless of where they appear.
func (d Diagram) CacheKey() string {
	// json.Marshal of a struct emits fields in declaration order, which
	// makes the serialization stable across processes.
	cfg, err := json.Marshal(d.Config.withDefaults())
	if err != nil {
		// RenderConfig contains only strings, ints, and bools; Marshal
		// cannot fail on it.
		panic("mmd2pdf: marshaling render config: " + err.Error())
	}

	h := sha256.New()
	h.Write([]byte(d.Content))
	h.Write([]byte{'|'})
	h.Write(cfg)
	return hex.EncodeToString(h.Sum(nil))
}

// LineRange formats the source span for diagnostics, e.g. "lines 3-7"
// or "line 3" for single-line diagrams.
func (d Diagram) LineRange() string {
	if d.StartLine == d.EndLine {
		return fmt.Sprintf("line %d", d.StartLine)
	}
	return fmt.Sprintf("lines %d-%d", d.StartLine, d.EndLine)
}

package mmd2pdf

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Input contains conversion parameters.
type Input struct {
	Markdown   string // Markdown content (required)
	OutputPath string // destination file (required)
	Title      string // optional document title, emitted as pandoc metadata
	HTMLOnly   bool   // write substituted document as HTML instead of PDF
}

// ConvertResult reports what a conversion produced.
type ConvertResult struct {
	Rewritten string             // document text after diagram substitution
	Images    map[Diagram]string // rendered image per diagram
	Errors    []string           // per-diagram failures, sorted by source line
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// pipelineConfig holds internal configuration for Pipeline.
type pipelineConfig struct {
	cacheDir      string
	cacheDisabled bool
	workers       int
	renderConfig  RenderConfig
	paperSize     string
	margin        string
}

// WithCacheDir sets the image cache location.
func WithCacheDir(dir string) Option {
	return func(p *Pipeline) {
		p.cfg.cacheDir = dir
	}
}

// WithCacheDisabled renders into a throwaway directory that is removed
// on Close, instead of the persistent cache.
func WithCacheDisabled() Option {
	return func(p *Pipeline) {
		p.cfg.cacheDisabled = true
	}
}

// WithWorkers sets the render pool size. Zero or negative selects an
// automatic size based on GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		p.cfg.workers = n
	}
}

// WithRenderConfig applies styling/engine options to every diagram.
func WithRenderConfig(cfg RenderConfig) Option {
	return func(p *Pipeline) {
		p.cfg.renderConfig = cfg
	}
}

// WithPaperSize sets the pandoc paper size (default "a4").
func WithPaperSize(size string) Option {
	return func(p *Pipeline) {
		p.cfg.paperSize = size
	}
}

// WithMargin sets the pandoc page margin (default "1in").
func WithMargin(margin string) Option {
	return func(p *Pipeline) {
		p.cfg.margin = margin
	}
}

// Pipeline orchestrates the extract, validate, render, rewrite, and
// convert stages. Create with NewPipeline, run conversions with
// Convert, and Close when done.
type Pipeline struct {
	cfg           pipelineConfig
	cache         *RenderCache
	renderer      *ImageRenderer
	pdfConverter  PDFConverter
	htmlConverter htmlConverter
	ephemeralDir  string // set when the cache is disabled; removed on Close
}

// NewPipeline creates a Pipeline with default configuration.
// Use options to customize behavior (e.g. WithCacheDir, WithWorkers).
func NewPipeline(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		cfg: pipelineConfig{cacheDir: DefaultCacheDir()},
	}

	for _, opt := range opts {
		opt(p)
	}

	cacheDir := p.cfg.cacheDir
	if p.cfg.cacheDisabled {
		dir, err := os.MkdirTemp("", "mmd2pdf-cache-")
		if err != nil {
			return nil, fmt.Errorf("creating ephemeral cache: %w", err)
		}
		p.ephemeralDir = dir
		cacheDir = dir
	}

	cache, err := NewRenderCache(cacheDir)
	if err != nil {
		return nil, err
	}
	p.cache = cache
	p.renderer = NewImageRenderer(cache, p.cfg.workers)

	pandoc := NewPandocConverter()
	if p.cfg.paperSize != "" {
		pandoc.PaperSize = p.cfg.paperSize
	}
	if p.cfg.margin != "" {
		pandoc.Margin = p.cfg.margin
	}
	p.pdfConverter = pandoc
	p.htmlConverter = newGoldmarkConverter()

	return p, nil
}

// Convert runs the full pipeline: extract diagrams, validate them,
// render each to a cached image, substitute image references into the
// document, and hand the result to pandoc (or goldmark for HTMLOnly).
//
// Per-diagram problems are collected into the result's Errors list and
// reported as a single error; a converter failure is fatal for the run
// and never leaves a partial output file.
func (p *Pipeline) Convert(ctx context.Context, input Input) (*ConvertResult, error) {
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	if input.OutputPath == "" {
		return nil, fmt.Errorf("%w: output path required", ErrWriteOutput)
	}

	content := NormalizeLineEndings(input.Markdown)

	diagrams := ExtractDiagrams(content)
	for i := range diagrams {
		diagrams[i].Config = p.cfg.renderConfig
	}

	result := &ConvertResult{Rewritten: content, Images: map[Diagram]string{}}

	if errs := ValidateDiagrams(diagrams); len(errs) > 0 {
		result.Errors = errs
		return result, fmt.Errorf("%w: %s", ErrInvalidDiagram, strings.Join(errs, "; "))
	}

	if len(diagrams) > 0 {
		scratch, err := os.MkdirTemp("", "mmd2pdf-render-")
		if err != nil {
			return result, fmt.Errorf("%w: %v", ErrRenderFailed, err)
		}
		defer func() { _ = os.RemoveAll(scratch) }()

		rendered := p.renderer.RenderAll(ctx, diagrams, scratch)
		result.Images = rendered.Images
		result.Errors = rendered.Errors
		if len(rendered.Errors) > 0 {
			return result, fmt.Errorf("%w: %s", ErrRenderFailed, strings.Join(rendered.Errors, "; "))
		}

		content = ReplaceWithImages(content, rendered.Images)
		result.Rewritten = content
	}

	if input.Title != "" {
		content = fmt.Sprintf("%% %s\n\n%s", input.Title, content)
	}

	if input.HTMLOnly {
		html, err := p.htmlConverter.ToHTML(ctx, content)
		if err != nil {
			return result, err
		}
		if err := os.WriteFile(input.OutputPath, []byte(html), 0o644); err != nil { // #nosec G306 -- output documents are meant to be readable
			return result, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return result, nil
	}

	if err := p.pdfConverter.ToPDF(ctx, content, input.OutputPath); err != nil {
		return result, err
	}

	return result, nil
}

// CacheDir returns the active image cache location.
func (p *Pipeline) CacheDir() string {
	return p.cache.Dir()
}

// Close releases pipeline resources. With WithCacheDisabled it removes
// the throwaway render directory; the persistent cache is never torn
// down here.
func (p *Pipeline) Close() error {
	if p.ephemeralDir != "" {
		return os.RemoveAll(p.ephemeralDir)
	}
	return nil
}

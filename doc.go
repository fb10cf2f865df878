// Package mmd2pdf converts Markdown documents with embedded Mermaid
// diagrams to PDF using the Mermaid CLI and Pandoc.
//
// # Quick Start
//
// Create a pipeline and convert a document:
//
//	p, err := mmd2pdf.NewPipeline()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := p.Convert(ctx, mmd2pdf.Input{
//	    Markdown:   content,
//	    OutputPath: "report.pdf",
//	})
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Diagram extraction (```mermaid fences and <mermaid> tags, with
//     exact line provenance)
//  2. Diagram validation (known diagram types, direction specifiers)
//  3. Concurrent image rendering via the Mermaid CLI (mmdc), backed by
//     a content-addressed cache
//  4. Positional substitution of diagram sources with image references
//  5. PDF generation via Pandoc (xelatex engine), or standalone HTML
//     via Goldmark when Input.HTMLOnly is set
//
// # Configuration
//
// Use functional options to customize the pipeline:
//
//	p, err := mmd2pdf.NewPipeline(
//	    mmd2pdf.WithCacheDir("/var/cache/mmd2pdf"),
//	    mmd2pdf.WithRenderConfig(mmd2pdf.RenderConfig{Theme: "dark"}),
//	    mmd2pdf.WithWorkers(4),
//	)
//
// Diagrams render in parallel across a bounded worker pool. A failing
// diagram never aborts the batch: per-diagram errors are collected into
// the result tagged with their source line numbers.
//
// # Caching
//
// Rendered images are cached under a SHA-256 key derived from the
// diagram content and its render configuration, so identical diagrams
// render once and are reused across runs. The cache directory persists
// until removed by the caller; use WithCacheDisabled to render into a
// throwaway directory instead.
//
// # External Tools
//
// Rendering requires the Mermaid CLI (mmdc) and PDF generation requires
// Pandoc with xelatex. The mmd2pdf doctor command diagnoses missing
// tools, including the Chrome/Chromium instance mmdc's puppeteer
// backend needs.
package mmd2pdf

package mmd2pdf

import (
	"context"
	"fmt"

	"github.com/alnah/go-mmd2pdf/internal/fileutil"
)

// pandocCommand is the document converter binary name.
const pandocCommand = "pandoc"

// Default pandoc layout settings.
const (
	DefaultPaperSize = "a4"
	DefaultMargin    = "1in"
)

// PDFConverter abstracts Markdown to PDF conversion to allow different
// backends.
type PDFConverter interface {
	ToPDF(ctx context.Context, markdown, outputPath string) error
}

// PandocConverter converts Markdown to PDF by invoking Pandoc with the
// xelatex engine.
type PandocConverter struct {
	Runner    CommandRunner
	PaperSize string // "a4", "letter", ... (default: a4)
	Margin    string // e.g. "1in" (default: 1in)
}

// Compile-time interface implementation check.
var _ PDFConverter = (*PandocConverter)(nil)

// NewPandocConverter creates a PandocConverter with a real command runner.
func NewPandocConverter() *PandocConverter {
	return &PandocConverter{
		Runner:    &ExecRunner{},
		PaperSize: DefaultPaperSize,
		Margin:    DefaultMargin,
	}
}

// ToPDF converts Markdown content to a standalone PDF document.
// A pandoc failure is fatal for the run: stderr is surfaced verbatim
// and no partial PDF is left behind.
func (c *PandocConverter) ToPDF(ctx context.Context, markdown, outputPath string) error {
	if markdown == "" {
		return ErrEmptyMarkdown
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(markdown, "md")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	paperSize := c.PaperSize
	if paperSize == "" {
		paperSize = DefaultPaperSize
	}
	margin := c.Margin
	if margin == "" {
		margin = DefaultMargin
	}

	_, stderr, err := c.Runner.Run(ctx, pandocCommand,
		tmpPath,
		"-o", outputPath,
		"--pdf-engine=xelatex",
		"--standalone",
		"-V", "geometry:margin="+margin,
		"-V", "documentclass:article",
		"-V", "papersize:"+paperSize,
	)
	if err != nil {
		if stderr != "" {
			return fmt.Errorf("%w: %s", ErrPDFGeneration, stderr)
		}
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	return nil
}

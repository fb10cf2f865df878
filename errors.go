package mmd2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrRenderFailed   = errors.New("diagram rendering failed")
	ErrInvalidDiagram = errors.New("invalid diagram")

	// Validation errors.
	ErrEmptyDiagram     = errors.New("empty diagram")
	ErrMissingDirection = errors.New("missing direction")
	ErrUnknownType      = errors.New("invalid diagram type")
	ErrTooFewLines      = errors.New("diagram has too few lines")

	// Cache errors.
	ErrCacheStore = errors.New("failed to store cached image")

	// Output errors.
	ErrWriteOutput = errors.New("failed to write output file")
)

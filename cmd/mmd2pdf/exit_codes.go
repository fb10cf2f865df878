package main

import (
	"errors"
	"os"

	mmd2pdf "github.com/alnah/go-mmd2pdf"
	"github.com/alnah/go-mmd2pdf/internal/config"
	"github.com/alnah/go-mmd2pdf/internal/fileutil"
)

// Exit codes for mmd2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitTools   = 4 // External tool (mmdc/pandoc/xelatex) errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// External tool errors (exit 4)
	if errors.Is(err, mmd2pdf.ErrRenderFailed) ||
		errors.Is(err, mmd2pdf.ErrPDFGeneration) ||
		errors.Is(err, ErrMissingDependency) {
		return ExitTools
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, mmd2pdf.ErrWriteOutput) ||
		errors.Is(err, fileutil.ErrDirNotWritable) ||
		errors.Is(err, fileutil.ErrNotRegularFile) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, mmd2pdf.ErrEmptyMarkdown) ||
		errors.Is(err, mmd2pdf.ErrInvalidDiagram) ||
		errors.Is(err, fileutil.ErrNotMarkdown) ||
		errors.Is(err, fileutil.ErrNotPDF) ||
		errors.Is(err, ErrInvalidArgs) {
		return ExitUsage
	}

	return ExitGeneral
}

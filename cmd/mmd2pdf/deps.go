package main

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alnah/go-mmd2pdf/internal/hints"
)

// ErrMissingDependency indicates a required external tool is absent.
var ErrMissingDependency = errors.New("missing dependency")

// External tool binary names.
const (
	mmdcBinary    = "mmdc"
	pandocBinary  = "pandoc"
	xelatexBinary = "xelatex"
)

// LookPathFunc resolves a binary name on PATH. Injectable for tests.
type LookPathFunc func(name string) (string, error)

// DependencyChecker verifies the external tools the pipeline shells out
// to are present before any work starts; the pipeline itself does not
// re-check per call.
type DependencyChecker struct {
	LookPath LookPathFunc
}

// NewDependencyChecker returns a checker using the real PATH lookup.
func NewDependencyChecker() *DependencyChecker {
	return &DependencyChecker{LookPath: exec.LookPath}
}

// dependency pairs a binary with the hint shown when it is missing.
type dependency struct {
	binary string
	hint   string
}

// requiredTools lists everything a full PDF conversion needs.
func requiredTools() []dependency {
	return []dependency{
		{binary: mmdcBinary, hint: hints.ForMissingMermaidCLI()},
		{binary: pandocBinary, hint: hints.ForMissingPandoc()},
		{binary: xelatexBinary, hint: hints.ForMissingXelatex()},
	}
}

// Check reports whether the named binary is on PATH, returning its
// resolved location.
func (c *DependencyChecker) Check(binary string) (string, bool) {
	path, err := c.LookPath(binary)
	return path, err == nil
}

// VerifyAll confirms every required tool is installed. With htmlOnly
// the pandoc/xelatex checks are skipped since goldmark handles output.
func (c *DependencyChecker) VerifyAll(htmlOnly bool) error {
	var missing []string
	for _, dep := range requiredTools() {
		if htmlOnly && dep.binary != mmdcBinary {
			continue
		}
		if _, ok := c.Check(dep.binary); !ok {
			missing = append(missing, dep.binary+" not found"+dep.hint)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrMissingDependency, strings.Join(missing, "\n  "))
	}
	return nil
}

// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mmd2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a CI environment is detected.
func inCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForMissingMermaidCLI returns hints for a missing mmdc binary.
func ForMissingMermaidCLI() string {
	return format("install with: npm install -g @mermaid-js/mermaid-cli")
}

// ForMissingPandoc returns hints for a missing pandoc binary.
func ForMissingPandoc() string {
	return format("install pandoc from https://pandoc.org/installing.html")
}

// ForMissingXelatex returns hints for a missing xelatex binary.
func ForMissingXelatex() string {
	return format("install a TeX distribution (e.g. texlive-xetex)")
}

// ForRenderFailure returns hints for diagram render errors.
// Detects CI/Docker environments where the Chromium sandbox cannot run.
func ForRenderFailure() string {
	var hints []string

	if inCI() || IsInContainer() {
		hints = append(hints, "container/CI detected: enable render.noSandbox or --no-sandbox")
	}
	hints = append(hints, "verify the diagram renders at https://mermaid.live")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for documents with many diagrams, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mmd2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-mmd2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mmd2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown with Mermaid diagrams to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert a markdown file to PDF (default)")
	fmt.Fprintln(w, "  doctor     Check external tool installation")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mmd2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mmd2pdf convert <input.md> [output.pdf] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a markdown file with Mermaid diagrams to PDF.")
	fmt.Fprintln(w, "Diagrams are rendered to PNG with mmdc and the document")
	fmt.Fprintln(w, "is typeset with pandoc (xelatex).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input.md      Markdown file to convert")
	fmt.Fprintln(w, "  output.pdf    Output path (default: input with .pdf extension)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --title <s>           Document title for the PDF")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel render workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Conversion timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w, "      --html-only           Write substituted HTML instead of PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagrams:")
	fmt.Fprintln(w, "      --theme <s>           Mermaid theme: default, dark, forest, neutral")
	fmt.Fprintln(w, "      --font-family <s>     Diagram font family")
	fmt.Fprintln(w, "      --font-size <s>       Diagram font size (e.g. 14px)")
	fmt.Fprintln(w, "      --scale <n>           Diagram scale factor (0 = default)")
	fmt.Fprintln(w, "      --no-sandbox          Disable Chromium sandbox (Docker/CI)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cache:")
	fmt.Fprintln(w, "      --cache-dir <path>    Image cache directory (default: ~/.mmd2pdf-cache)")
	fmt.Fprintln(w, "      --no-cache            Disable the persistent image cache")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Paper size: a4, letter")
	fmt.Fprintln(w, "      --margin <s>          Page margin (e.g. 1in, 2cm)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed progress")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mmd2pdf doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that mmdc, pandoc, and xelatex are installed and that")
	fmt.Fprintln(w, "the environment can render diagrams.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json    Output machine-readable JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mmd2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	default:
		fmt.Fprintf(env.Stdout, "Unknown command: %s\n\n", args[0])
		printUsage(env.Stdout)
	}
}

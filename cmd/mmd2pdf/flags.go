package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds diagram rendering flags.
type renderFlags struct {
	theme      string
	fontFamily string
	fontSize   string
	scale      int
	noSandbox  bool
}

// cacheFlags holds image cache flags.
type cacheFlags struct {
	dir      string
	disabled bool
}

// pageFlags holds pandoc page layout flags.
type pageFlags struct {
	size   string
	margin string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	title    string
	workers  int
	timeout  string
	htmlOnly bool
	render   renderFlags
	cache    cacheFlags
	page     pageFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addRenderFlags adds diagram rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.theme, "theme", "", "mermaid theme: default, dark, forest, neutral")
	fs.StringVar(&f.fontFamily, "font-family", "", "diagram font family")
	fs.StringVar(&f.fontSize, "font-size", "", "diagram font size (e.g. 14px)")
	fs.IntVar(&f.scale, "scale", 0, "diagram scale factor (0 = default)")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable Chromium sandbox (Docker/CI)")
}

// addCacheFlags adds image cache flags to a FlagSet.
func addCacheFlags(fs *flag.FlagSet, f *cacheFlags) {
	fs.StringVar(&f.dir, "cache-dir", "", "image cache directory (default: ~/.mmd2pdf-cache)")
	fs.BoolVar(&f.disabled, "no-cache", false, "disable the persistent image cache")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "paper size: a4, letter")
	fs.StringVar(&f.margin, "margin", "", "page margin (e.g. 1in, 2cm)")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVar(&f.title, "title", "", "document title for the PDF")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel render workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g. 30s, 2m)")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write substituted HTML instead of PDF")

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addCacheFlags(fs, &f.cache)
	addPageFlags(fs, &f.page)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

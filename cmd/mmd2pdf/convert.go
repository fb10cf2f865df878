package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	mmd2pdf "github.com/alnah/go-mmd2pdf"
	"github.com/alnah/go-mmd2pdf/internal/config"
	"github.com/alnah/go-mmd2pdf/internal/fileutil"
	"github.com/alnah/go-mmd2pdf/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidArgs  = errors.New("usage: mmd2pdf convert <input.md> [output.pdf] [flags]")
	ErrReadMarkdown = errors.New("failed to read markdown file")
)

// defaultTimeout bounds a whole conversion, diagrams included.
const defaultTimeout = 5 * time.Minute

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	inputPath, outputPath, err := resolvePaths(positionalArgs, flags.htmlOnly)
	if err != nil {
		return err
	}

	if err := fileutil.ValidateInputPath(inputPath); err != nil {
		return err
	}
	if !flags.htmlOnly {
		if err := fileutil.ValidateOutputPath(outputPath); err != nil {
			return err
		}
	}

	if !flags.common.quiet {
		fmt.Fprintln(env.Stdout, "Checking dependencies...")
	}
	if err := NewDependencyChecker().VerifyAll(flags.htmlOnly); err != nil {
		return err
	}

	// Load configuration; CLI flags win over config values.
	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(nil))
			}
			return fmt.Errorf("loading config: %w", err)
		}
	}
	mergeFlags(flags, cfg)

	timeout := defaultTimeout
	if flags.timeout != "" {
		timeout, err = time.ParseDuration(flags.timeout)
		if err != nil || timeout <= 0 {
			return fmt.Errorf("%w: invalid timeout %q", ErrInvalidArgs, flags.timeout)
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path, validated above
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = pipeline.Close() }()

	if !flags.common.quiet {
		fmt.Fprintln(env.Stdout, "Converting", inputPath, "->", outputPath)
	}

	start := env.Now()
	result, err := pipeline.Convert(ctx, mmd2pdf.Input{
		Markdown:   string(content),
		OutputPath: outputPath,
		Title:      cfg.Document.Title,
		HTMLOnly:   flags.htmlOnly,
	})
	if err != nil {
		return decorateConvertError(err, result)
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Rendered %d diagram(s) in %s\n", len(result.Images), time.Since(start).Round(time.Millisecond))
		fmt.Fprintf(env.Stderr, "Cache: %s\n", pipeline.CacheDir())
	}
	if !flags.common.quiet {
		fmt.Fprintln(env.Stdout, "Created", outputPath)
	}
	return nil
}

// resolvePaths derives input and output paths from positional args.
// The output defaults to the input with its extension swapped.
func resolvePaths(args []string, htmlOnly bool) (inputPath, outputPath string, err error) {
	switch len(args) {
	case 1:
		ext := ".pdf"
		if htmlOnly {
			ext = ".html"
		}
		in := args[0]
		return in, strings.TrimSuffix(in, filepath.Ext(in)) + ext, nil
	case 2:
		return args[0], args[1], nil
	default:
		return "", "", ErrInvalidArgs
	}
}

// mergeFlags overlays explicitly set CLI flags onto the config.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.title != "" {
		cfg.Document.Title = flags.title
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.render.theme != "" {
		cfg.Render.Theme = flags.render.theme
	}
	if flags.render.fontFamily != "" {
		cfg.Render.FontFamily = flags.render.fontFamily
	}
	if flags.render.fontSize != "" {
		cfg.Render.FontSize = flags.render.fontSize
	}
	if flags.render.scale > 0 {
		cfg.Render.Scale = flags.render.scale
	}
	if flags.render.noSandbox {
		cfg.Render.NoSandbox = true
	}
	if flags.cache.dir != "" {
		cfg.Cache.Dir = flags.cache.dir
	}
	if flags.cache.disabled {
		cfg.Cache.Disabled = true
	}
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.margin != "" {
		cfg.Page.Margin = flags.page.margin
	}
}

// buildPipeline translates config into pipeline options.
func buildPipeline(cfg *config.Config) (*mmd2pdf.Pipeline, error) {
	opts := []mmd2pdf.Option{
		mmd2pdf.WithWorkers(cfg.Workers),
		mmd2pdf.WithRenderConfig(mmd2pdf.RenderConfig{
			Theme:      cfg.Render.Theme,
			FontFamily: cfg.Render.FontFamily,
			FontSize:   cfg.Render.FontSize,
			Scale:      cfg.Render.Scale,
			NoSandbox:  cfg.Render.NoSandbox,
		}),
	}
	if cfg.Cache.Dir != "" {
		opts = append(opts, mmd2pdf.WithCacheDir(cfg.Cache.Dir))
	}
	if cfg.Cache.Disabled {
		opts = append(opts, mmd2pdf.WithCacheDisabled())
	}
	if cfg.Page.Size != "" {
		opts = append(opts, mmd2pdf.WithPaperSize(cfg.Page.Size))
	}
	if cfg.Page.Margin != "" {
		opts = append(opts, mmd2pdf.WithMargin(cfg.Page.Margin))
	}
	return mmd2pdf.NewPipeline(opts...)
}

// decorateConvertError appends per-diagram detail and hints to a
// pipeline failure.
func decorateConvertError(err error, result *mmd2pdf.ConvertResult) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("conversion timed out: %w%s", err, hints.ForTimeout())
	}
	if errors.Is(err, mmd2pdf.ErrRenderFailed) {
		return fmt.Errorf("%w%s", err, hints.ForRenderFailure())
	}
	if result != nil && len(result.Errors) > 0 && !errors.Is(err, mmd2pdf.ErrInvalidDiagram) {
		return fmt.Errorf("%w (%d diagram(s) failed)", err, len(result.Errors))
	}
	return err
}

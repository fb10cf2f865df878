package mmd2pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/alnah/go-mmd2pdf/internal/fileutil"
)

// Worker pool sizing constants.
const (
	// MinRenderWorkers ensures at least one worker is available.
	MinRenderWorkers = 1

	// MaxRenderWorkers caps concurrent mmdc invocations; each one spawns
	// a Chromium instance (~200MB).
	MaxRenderWorkers = 8

	// cpuDivisor leaves headroom for Chromium child processes.
	cpuDivisor = 2
)

// mmdcCommand is the Mermaid CLI binary name.
const mmdcCommand = "mmdc"

// RenderResult is the outcome of rendering one diagram.
type RenderResult struct {
	Diagram   Diagram
	ImagePath string // cached image path; empty on failure
	Err       error  // nil on success
}

// PipelineResult aggregates a render batch: the diagram-to-image map
// for every success plus one error string per failure, sorted by the
// failing diagram's start line for stable diagnostics.
type PipelineResult struct {
	Images map[Diagram]string
	Errors []string
}

// ImageRenderer renders Mermaid diagrams to PNG images by invoking the
// Mermaid CLI, deduplicating work through a content-addressed cache.
// Safe for concurrent use; RenderAll fans out across a bounded pool.
type ImageRenderer struct {
	cache   *RenderCache
	runner  CommandRunner
	workers int
}

// NewImageRenderer creates a renderer backed by the given cache.
// workers <= 0 selects an automatic pool size based on GOMAXPROCS.
func NewImageRenderer(cache *RenderCache, workers int) *ImageRenderer {
	return &ImageRenderer{
		cache:   cache,
		runner:  &ExecRunner{},
		workers: ResolveRenderWorkers(workers),
	}
}

// ResolveRenderWorkers determines the render pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolveRenderWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinRenderWorkers {
		return MinRenderWorkers
	}
	if n > MaxRenderWorkers {
		return MaxRenderWorkers
	}
	return n
}

// RenderAll renders every diagram, writing scratch output into
// outputDir, and collects per-diagram outcomes. A failing diagram never
// affects its siblings; the batch always runs to completion.
//
// Each worker writes its result into its own slot of an index-addressed
// slice, so no shared collection is mutated concurrently; the map and
// error list are merged single-threaded after all workers join.
func (r *ImageRenderer) RenderAll(ctx context.Context, diagrams []Diagram, outputDir string) PipelineResult {
	result := PipelineResult{Images: make(map[Diagram]string, len(diagrams))}
	if len(diagrams) == 0 {
		return result
	}

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		for _, d := range diagrams {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: creating output directory: %v", d.LineRange(), err))
		}
		return result
	}

	concurrency := r.workers
	if concurrency > len(diagrams) {
		concurrency = len(diagrams)
	}

	results := make([]RenderResult, len(diagrams))
	jobs := make(chan int, len(diagrams))
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				d := diagrams[idx]
				path, err := r.renderOne(ctx, d, outputDir)
				results[idx] = RenderResult{Diagram: d, ImagePath: path, Err: err}
			}
		}()
	}

	for i := range diagrams {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var failed []RenderResult
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res)
			continue
		}
		result.Images[res.Diagram] = res.ImagePath
	}

	// Completion order is nondeterministic; sort errors by source line
	// so diagnostics are stable.
	sort.SliceStable(failed, func(i, j int) bool {
		return failed[i].Diagram.StartLine < failed[j].Diagram.StartLine
	})
	for _, res := range failed {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", res.Diagram.LineRange(), res.Err))
	}

	return result
}

// renderOne renders a single diagram, consulting the cache first.
// Scratch files (diagram body, config files, raw output) are always
// removed, on success and failure alike.
func (r *ImageRenderer) renderOne(ctx context.Context, d Diagram, outputDir string) (string, error) {
	key := d.CacheKey()
	if path, ok := r.cache.Lookup(key); ok {
		return path, nil
	}

	mmdPath, cleanupMmd, err := fileutil.WriteTempFile(d.Content, "mmd")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer cleanupMmd()

	configPath, cleanupConfig, err := writeMermaidConfig(d.Config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer cleanupConfig()

	puppeteerPath, cleanupPuppeteer, err := writePuppeteerConfig(d.Config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer cleanupPuppeteer()

	// Unique scratch output per invocation so concurrent workers never
	// collide, even when rendering identical diagrams.
	out, err := os.CreateTemp(outputDir, "diagram-*"+imageExtension)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	outputPath := out.Name()
	_ = out.Close()
	defer func() { _ = os.Remove(outputPath) }()

	args := []string{
		"-i", mmdPath,
		"-o", outputPath,
		"-c", configPath,
		"-p", puppeteerPath,
	}
	if d.Config.Scale > 0 {
		args = append(args, "-s", fmt.Sprintf("%d", d.Config.Scale))
	}

	_, stderr, err := r.runner.Run(ctx, mmdcCommand, args...)
	if err != nil {
		if stderr != "" {
			return "", fmt.Errorf("%w: %s", ErrRenderFailed, stderr)
		}
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		return "", fmt.Errorf("%w: generated artifact missing or empty", ErrRenderFailed)
	}

	cached, err := r.cache.Store(key, outputPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return cached, nil
}

// mermaidConfig mirrors the mmdc --configFile JSON shape.
type mermaidConfig struct {
	Theme          string         `json:"theme"`
	ThemeVariables themeVariables `json:"themeVariables"`
}

type themeVariables struct {
	FontFamily string `json:"fontFamily"`
	FontSize   string `json:"fontSize"`
}

// writeMermaidConfig serializes the style settings into a transient
// mmdc config file.
func writeMermaidConfig(cfg RenderConfig) (string, func(), error) {
	cfg = cfg.withDefaults()
	data, err := json.Marshal(mermaidConfig{
		Theme: cfg.Theme,
		ThemeVariables: themeVariables{
			FontFamily: cfg.FontFamily,
			FontSize:   cfg.FontSize,
		},
	})
	if err != nil {
		return "", nil, err
	}
	return fileutil.WriteTempFile(string(data), "json")
}

// puppeteerConfig mirrors the mmdc --puppeteerConfigFile JSON shape.
type puppeteerConfig struct {
	Args     []string `json:"args"`
	Headless string   `json:"headless"`
}

// writePuppeteerConfig serializes browser settings for mmdc's puppeteer
// backend into a transient config file.
func writePuppeteerConfig(cfg RenderConfig) (string, func(), error) {
	pc := puppeteerConfig{
		Args:     []string{"--allow-file-access-from-files"},
		Headless: "new",
	}
	if cfg.NoSandbox {
		pc.Args = append(pc.Args, "--no-sandbox", "--disable-setuid-sandbox")
	}

	data, err := json.Marshal(pc)
	if err != nil {
		return "", nil, err
	}
	return fileutil.WriteTempFile(string(data), "json")
}

package mmd2pdf

import (
	"fmt"
	"os"
	"path/filepath"
)

// imageExtension matches the fixed mmdc output format.
const imageExtension = ".png"

// cacheDirPermissions keeps the cache private to the owner's group.
const cacheDirPermissions = 0o750

// RenderCache is a content-addressed store of rendered diagram images.
// Entries are keyed by Diagram.CacheKey and live as <key>.png files in a
// single directory, so the filesystem itself is the index. The cache is
// shared by all render workers and persists across runs; diagrams are
// expensive to regenerate, so nothing here tears it down.
type RenderCache struct {
	dir string
}

// NewRenderCache opens (creating if needed) a cache rooted at dir.
func NewRenderCache(dir string) (*RenderCache, error) {
	if err := os.MkdirAll(dir, cacheDirPermissions); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", dir, err)
	}
	return &RenderCache{dir: dir}, nil
}

// DefaultCacheDir returns the per-user cache location,
// ~/.mmd2pdf-cache, falling back to the system temp directory when the
// home directory cannot be determined.
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "mmd2pdf-cache")
	}
	return filepath.Join(home, ".mmd2pdf-cache")
}

// Dir returns the cache root.
func (c *RenderCache) Dir() string {
	return c.dir
}

// Lookup returns the path of the cached image for key, if present.
// A cache entry whose file has vanished from disk counts as a miss, not
// an error, so callers self-heal by re-rendering.
func (c *RenderCache) Lookup(key string) (string, bool) {
	path := c.entryPath(key)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return "", false
	}
	return path, true
}

// Store promotes a rendered image into the cache under key and returns
// the cached path. Storing an already-present key is a no-op
// (first-writer-wins).
//
// The write is atomic: bytes go to a uniquely named temp file in the
// cache directory and are renamed into place, so concurrent workers
// storing the same key race benignly and a reader never observes a
// partial image.
func (c *RenderCache) Store(key, imagePath string) (string, error) {
	target := c.entryPath(key)
	if _, ok := c.Lookup(key); ok {
		return target, nil
	}

	data, err := os.ReadFile(imagePath) // #nosec G304 -- path produced by our own renderer
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrCacheStore, imagePath, err)
	}

	tmp, err := os.CreateTemp(c.dir, key+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCacheStore, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %v", ErrCacheStore, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %v", ErrCacheStore, err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %v", ErrCacheStore, err)
	}

	return target, nil
}

// entryPath maps a cache key to its filesystem location. Keys are hex
// digests, so names never collide and need no escaping.
func (c *RenderCache) entryPath(key string) string {
	return filepath.Join(c.dir, key+imageExtension)
}

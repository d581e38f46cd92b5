package views

import (
	"io/fs"
	"log/slog"
	"strings"
	"sync"
)

// Cache owns the resource table for one application. It is built once at
// startup and handed to request-time collaborators explicitly; there is no
// ambient global.
//
// In development mode a lookup miss triggers exactly one rescan before the
// miss is final, so newly added view files are picked up without a restart.
// Concurrent first-misses may each rescan redundantly; the scan is idempotent
// so the race is benign.
type Cache struct {
	scan  func() *Resources
	roots []Root
	dev   bool
	log   *slog.Logger

	mu  sync.RWMutex
	res *Resources
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger sets the structured logger used for scan reporting.
func WithLogger(log *slog.Logger) CacheOption {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// NewCache scans the configured roots of fsys and returns the populated
// cache. Missing scan directories are tolerated and yield no entries.
func NewCache(fsys fs.FS, cfg Config, opts ...CacheOption) *Cache {
	roots := ParseScanPaths(cfg.ScanPaths)
	return newCache(func() *Resources { return Scan(fsys, roots) }, roots, cfg, opts)
}

// NewDirCache is NewCache over a real webroot directory, scanned with the
// concurrent OS walker.
func NewDirCache(webroot string, cfg Config, opts ...CacheOption) *Cache {
	roots := ParseScanPaths(cfg.ScanPaths)
	return newCache(func() *Resources { return ScanDir(webroot, roots) }, roots, cfg, opts)
}

func newCache(scan func() *Resources, roots []Root, cfg Config, opts []CacheOption) *Cache {
	c := &Cache{
		scan:  scan,
		roots: roots,
		dev:   cfg.DevelopmentMode,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.res = scan()
	c.log.Debug("view scan complete",
		slog.Int("resources", c.res.Len()),
		slog.Any("extensions", c.res.Extensions()))
	return c
}

// Snapshot returns the current resource table. The returned value is
// immutable; callers may hold it across several lookups for consistency.
func (c *Cache) Snapshot() *Resources {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.res
}

// Rebuild rescans the roots and swaps in a fresh resource table.
func (c *Cache) Rebuild() {
	res := c.scan()
	c.mu.Lock()
	c.res = res
	c.mu.Unlock()
	c.log.Debug("view cache rebuilt", slog.Int("resources", res.Len()))
}

// Resolve maps a logical request path to its physical resource. In
// development mode a miss triggers one rescan before concluding the resource
// does not exist.
func (c *Cache) Resolve(logical string) (string, bool) {
	if physical, ok := c.Snapshot().Lookup(logical); ok {
		return physical, true
	}
	if c.dev {
		c.Rebuild()
		return c.Snapshot().Lookup(logical)
	}
	return "", false
}

// ResolveMultiView resolves a request path that may carry trailing path
// parameters after a multi-view view. It strips segments from the right
// until a "/*" wildcard key matches, returning the physical resource, the
// matched logical base path, and the stripped segments in order.
func (c *Cache) ResolveMultiView(requestPath string) (physical, base string, params []string, ok bool) {
	logical := strings.TrimPrefix(requestPath, "/")
	res := c.Snapshot()

	for logical != "" {
		if physical, found := res.Lookup(logical + "/*"); found {
			return physical, "/" + logical, params, true
		}
		i := strings.LastIndex(logical, "/")
		if i < 0 {
			break
		}
		params = append([]string{logical[i+1:]}, params...)
		logical = logical[:i]
	}
	return "", "", nil, false
}

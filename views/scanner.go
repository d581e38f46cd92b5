package views

import (
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Resources is the lookup table produced by a scan. It is immutable after
// construction; per-request code only reads it.
type Resources struct {
	// byLogical maps logical paths (no leading slash) to webroot-absolute
	// physical paths. Every discovered file contributes two keys, with and
	// without its extension, plus a "/*" wildcard key under multi-view
	// roots. When two files normalize to the same extensionless key, the
	// last scanned wins.
	byLogical map[string]string
	// byPhysical maps physical paths back to their canonical extensionless
	// logical path.
	byPhysical map[string]string
	// extensions collects "*.ext" patterns for every distinct extension seen.
	extensions map[string]struct{}
	// publicRoots are the scanned roots that are directly web-accessible.
	publicRoots []string
}

// Scan walks every root in fsys and builds the resource table. Missing
// directories contribute nothing; scanning never fails.
func Scan(fsys fs.FS, roots []Root) *Resources {
	res := &Resources{
		byLogical:  make(map[string]string),
		byPhysical: make(map[string]string),
		extensions: make(map[string]struct{}),
	}

	for _, root := range roots {
		res.scanRoot(fsys, root)
		if root.Public() {
			res.publicRoots = append(res.publicRoots, root.Path)
		}
	}
	sort.Strings(res.publicRoots)
	return res
}

func (res *Resources) scanRoot(fsys fs.FS, root Root) {
	dir := fsPath(root.Path)

	_ = fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Tolerate missing or unreadable directories: an absent scan
			// root simply yields no entries.
			return fs.SkipDir
		}
		if d.IsDir() {
			if root.Path == "/" && p != "." && protectedDir(p) {
				return fs.SkipDir
			}
			return nil
		}

		ext := path.Ext(d.Name())
		if root.Ext != "" && ext != root.Ext {
			return nil
		}

		rel := p
		if dir != "." {
			rel = strings.TrimPrefix(p, dir+"/")
		}
		res.add(root, rel, "/"+p, ext)
		return nil
	})
}

// add inserts the map entries for one discovered file. rel is the logical
// path relative to the scan root, physical is webroot-absolute.
func (res *Resources) add(root Root, rel, physical, ext string) {
	extensionless := stripExtension(rel)

	res.byLogical[rel] = physical
	res.byLogical[extensionless] = physical
	if root.MultiViews {
		res.byLogical[extensionless+"/*"] = physical
	}
	res.byPhysical[physical] = extensionless
	if ext != "" {
		res.extensions["*"+ext] = struct{}{}
	}
}

// Lookup resolves a logical request path to a physical resource path.
// A leading slash on the argument is ignored.
func (res *Resources) Lookup(logical string) (string, bool) {
	physical, ok := res.byLogical[strings.TrimPrefix(logical, "/")]
	return physical, ok
}

// Canonical returns the extensionless logical path for a physical resource.
func (res *Resources) Canonical(physical string) (string, bool) {
	logical, ok := res.byPhysical[physical]
	return logical, ok
}

// Extensions returns the sorted "*.ext" patterns seen during the scan, for
// registering view handlers against each discovered extension.
func (res *Resources) Extensions() []string {
	out := make([]string, 0, len(res.extensions))
	for ext := range res.extensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// PublicRoots returns the scanned roots that are directly web-accessible.
func (res *Resources) PublicRoots() []string {
	return res.publicRoots
}

// Len reports the number of logical keys in the table.
func (res *Resources) Len() int {
	return len(res.byLogical)
}

// UnderPublicRoot reports whether a request path falls under a public scan
// root and names a scanned resource.
func (res *Resources) UnderPublicRoot(requestPath string) (canonical string, ok bool) {
	for _, root := range res.publicRoots {
		if strings.HasPrefix(requestPath, root) {
			if logical, found := res.byPhysical[requestPath]; found {
				return "/" + logical, true
			}
		}
	}
	return "", false
}

// stripExtension removes the final extension, if any, from a slash path.
func stripExtension(p string) string {
	return strings.TrimSuffix(p, path.Ext(p))
}

// fsPath converts a webroot-absolute root ("/foo/") to an io/fs path.
func fsPath(root string) string {
	p := strings.Trim(root, "/")
	if p == "" {
		return "."
	}
	return p
}

// protectedDir reports whether a top-level directory is container-internal
// and skipped when scanning the bare webroot. Explicitly configured roots
// under these directories are still scanned.
func protectedDir(p string) bool {
	if strings.Contains(p, "/") {
		return false
	}
	switch strings.ToUpper(p) {
	case "WEB-INF", "META-INF", "RESOURCES":
		return true
	}
	return false
}

package views

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// ScanDir builds the resource table from a real webroot directory on disk,
// walking each root concurrently. Deployments serving views from the
// filesystem (rather than an embedded fs.FS) should prefer this over Scan
// for large webroots.
func ScanDir(webroot string, roots []Root) *Resources {
	res := &Resources{
		byLogical:  make(map[string]string),
		byPhysical: make(map[string]string),
		extensions: make(map[string]struct{}),
	}
	var mu sync.Mutex

	conf := &fastwalk.Config{Follow: false}

	for _, root := range roots {
		dir := filepath.Join(webroot, filepath.FromSlash(strings.Trim(root.Path, "/")))

		// Walk errors mean an absent or unreadable root, which scanning
		// tolerates, same as Scan.
		_ = fastwalk.Walk(conf, dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return fastwalk.SkipDir
			}

			relOS, relErr := filepath.Rel(dir, p)
			if relErr != nil {
				return nil
			}
			rel := filepath.ToSlash(relOS)

			if d.IsDir() {
				if root.Path == "/" && rel != "." && protectedDir(rel) {
					return fastwalk.SkipDir
				}
				return nil
			}

			ext := filepath.Ext(d.Name())
			if root.Ext != "" && ext != root.Ext {
				return nil
			}

			relWebroot, relErr := filepath.Rel(webroot, p)
			if relErr != nil {
				return nil
			}

			mu.Lock()
			res.add(root, rel, "/"+filepath.ToSlash(relWebroot), ext)
			mu.Unlock()
			return nil
		})

		if root.Public() {
			res.publicRoots = append(res.publicRoots, root.Path)
		}
	}
	sort.Strings(res.publicRoots)
	return res
}

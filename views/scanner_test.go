package views_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/viewkit/views"
)

func webrootFS() fstest.MapFS {
	return fstest.MapFS{
		"index.xhtml":                            {Data: []byte("<html/>")},
		"users/list.xhtml":                       {Data: []byte("<html/>")},
		"WEB-INF/faces-views/users/add.xhtml":    {Data: []byte("<html/>")},
		"WEB-INF/faces-views/users/edit.xhtml":   {Data: []byte("<html/>")},
		"WEB-INF/web.xml":                        {Data: []byte("<web-app/>")},
		"META-INF/MANIFEST.MF":                   {Data: []byte("Manifest-Version: 1.0")},
		"resources/css/style.css":                {Data: []byte("body{}")},
		"WEB-INF/faces-views/reports/summary.js": {Data: []byte("export {}")},
	}
}

func TestScanDoubleKeyInvariant(t *testing.T) {
	t.Parallel()

	res := views.Scan(webrootFS(), views.ParseScanPaths("/"))

	// Every discovered file is reachable by both its extensioned and its
	// extensionless logical path, mapping to the same physical resource.
	for logical, physicalWant := range map[string]string{
		"users/add.xhtml":    "/WEB-INF/faces-views/users/add.xhtml",
		"users/add":          "/WEB-INF/faces-views/users/add.xhtml",
		"users/list.xhtml":   "/users/list.xhtml",
		"users/list":         "/users/list.xhtml",
		"reports/summary.js": "/WEB-INF/faces-views/reports/summary.js",
		"reports/summary":    "/WEB-INF/faces-views/reports/summary.js",
	} {
		physical, ok := res.Lookup(logical)
		require.True(t, ok, "expected %q in resource map", logical)
		assert.Equal(t, physicalWant, physical)
	}
}

func TestScanExtensionlessAndExtensionedAgree(t *testing.T) {
	t.Parallel()

	res := views.Scan(webrootFS(), views.ParseScanPaths("/"))

	// Appending the physical file's real extension to any extensionless key
	// must be a valid lookup with a consistent result.
	short, ok := res.Lookup("users/add")
	require.True(t, ok)
	long, ok := res.Lookup("users/add.xhtml")
	require.True(t, ok)
	assert.Equal(t, short, long)
}

func TestScanSkipsProtectedDirectories(t *testing.T) {
	t.Parallel()

	res := views.Scan(webrootFS(), views.ParseScanPaths("/"))

	_, ok := res.Lookup("WEB-INF/web.xml")
	assert.False(t, ok, "WEB-INF content must not be scanned from the bare webroot")
	_, ok = res.Lookup("META-INF/MANIFEST.MF")
	assert.False(t, ok)
	_, ok = res.Lookup("resources/css/style.css")
	assert.False(t, ok)
}

func TestScanExplicitProtectedRoot(t *testing.T) {
	t.Parallel()

	// WEB-INF/faces-views is always scanned even though WEB-INF itself is
	// skipped; it counts as an explicitly configured root.
	res := views.Scan(webrootFS(), views.ParseScanPaths("/WEB-INF/faces-views/"))

	physical, ok := res.Lookup("users/add")
	require.True(t, ok)
	assert.Equal(t, "/WEB-INF/faces-views/users/add.xhtml", physical)
}

func TestScanExtensionRestrictedRoot(t *testing.T) {
	t.Parallel()

	res := views.Scan(webrootFS(), views.ParseScanPaths("/WEB-INF/faces-views/*.xhtml"))

	_, ok := res.Lookup("users/add")
	assert.True(t, ok)
	_, ok = res.Lookup("reports/summary")
	assert.False(t, ok, "non-xhtml files must be excluded by the *.xhtml restriction")
	assert.Equal(t, []string{"*.xhtml"}, res.Extensions())
}

func TestScanMissingRoot(t *testing.T) {
	t.Parallel()

	res := views.Scan(fstest.MapFS{}, views.ParseScanPaths("/does/not/exist"))
	assert.Zero(t, res.Len())
	assert.Empty(t, res.Extensions())
}

func TestScanExtensions(t *testing.T) {
	t.Parallel()

	res := views.Scan(webrootFS(), views.ParseScanPaths("/"))
	assert.Equal(t, []string{"*.js", "*.xhtml"}, res.Extensions())
}

func TestScanPublicRoots(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"foo/users/add.xhtml": {Data: []byte("<html/>")},
	}
	res := views.Scan(fsys, views.ParseScanPaths("/foo, /WEB-INF/faces-views"))

	assert.Equal(t, []string{"/foo/"}, res.PublicRoots())

	canonical, ok := res.UnderPublicRoot("/foo/users/add.xhtml")
	require.True(t, ok)
	assert.Equal(t, "/users/add", canonical)

	_, ok = res.UnderPublicRoot("/bar/users/add.xhtml")
	assert.False(t, ok)
}

func TestScanMultiViewKeys(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"users/profile.xhtml": {Data: []byte("<html/>")},
	}
	res := views.Scan(fsys, views.ParseScanPaths("/*"))

	physical, ok := res.Lookup("users/profile/*")
	require.True(t, ok)
	assert.Equal(t, "/users/profile.xhtml", physical)
}

func TestParseScanPaths(t *testing.T) {
	t.Parallel()

	t.Run("always includes well-known root", func(t *testing.T) {
		t.Parallel()
		roots := views.ParseScanPaths("")
		require.Len(t, roots, 1)
		assert.Equal(t, views.WebInfViews, roots[0].Path)
	})

	t.Run("extension restriction", func(t *testing.T) {
		t.Parallel()
		roots := views.ParseScanPaths("/foo/*.xhtml")
		require.NotEmpty(t, roots)
		assert.Equal(t, "/foo/", roots[0].Path)
		assert.Equal(t, ".xhtml", roots[0].Ext)
		assert.False(t, roots[0].MultiViews)
	})

	t.Run("multi-view suffix", func(t *testing.T) {
		t.Parallel()
		roots := views.ParseScanPaths("/foo/*")
		require.NotEmpty(t, roots)
		assert.Equal(t, "/foo/", roots[0].Path)
		assert.True(t, roots[0].MultiViews)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		t.Parallel()
		roots := views.ParseScanPaths("/foo, /foo/, /WEB-INF/faces-views/")
		assert.Len(t, roots, 2)
	})

	t.Run("public classification", func(t *testing.T) {
		t.Parallel()
		assert.False(t, views.Root{Path: "/"}.Public())
		assert.False(t, views.Root{Path: "/WEB-INF/faces-views/"}.Public())
		assert.False(t, views.Root{Path: "/META-INF/resources/"}.Public())
		assert.True(t, views.Root{Path: "/foo/"}.Public())
	})
}

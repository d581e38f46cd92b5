package views_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func publicRootFS() fstest.MapFS {
	return fstest.MapFS{
		"foo/users/add.xhtml": {Data: []byte("<html/>")},
		"users/profile.xhtml": {Data: []byte("<html/>")},
	}
}

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("<html/>"), 0o644))
}

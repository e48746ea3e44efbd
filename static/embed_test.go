package static

import (
	"io/fs"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedAssetsExist(t *testing.T) {
	expected := []string{
		"feed.css",
		"feed.js",
		"video-placeholder.svg",
	}

	var got []string
	err := fs.WalkDir(FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		got = append(got, path)
		return nil
	})
	require.NoError(t, err)

	sort.Strings(got)
	require.Equal(t, expected, got)
}

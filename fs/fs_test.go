package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forksen/forksen-qiniu/fs"
	"github.com/forksen/forksen-qiniu/fs/billy"
)

func TestGetAbs(t *testing.T) {
	t.Run("absolute path passthrough", func(t *testing.T) {
		got, err := fs.GetAbs("/tmp/../tmp")
		require.NoError(t, err)
		assert.Equal(t, "/tmp", got)
	})

	t.Run("relative path conversion", func(t *testing.T) {
		got, err := fs.GetAbs(".")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "GetAbs(.) = %q, want absolute path", got)
	})
}

func TestIsRegularFile(t *testing.T) {
	mem := billy.NewInMemoryFS()
	require.NoError(t, mem.WriteFile("/data/a.txt", []byte("hello"), 0o644))

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing file", "/data/a.txt", true},
		{"directory", "/data", false},
		{"missing file", "/data/missing.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fs.IsRegularFile(mem, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

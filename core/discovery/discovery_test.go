package discovery

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func TestWalk_FiltersByExtensionCaseInsensitive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jpg"))
	touch(t, filepath.Join(dir, "b.JPG"))
	touch(t, filepath.Join(dir, "c.txt"))

	paths, err := New(nil, nil).Walk(dir, false)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestWalk_NonRecursiveStopsAtTopLevel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o700))
	touch(t, filepath.Join(dir, "top.jpg"))
	touch(t, filepath.Join(sub, "nested.jpg"))

	paths, err := New(nil, nil).Walk(dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "top.jpg")}, paths)
}

func TestWalk_RecursiveDescendsIntoSubdirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o700))
	touch(t, filepath.Join(dir, "top.jpg"))
	touch(t, filepath.Join(sub, "nested.jpg"))

	paths, err := New(nil, nil).Walk(dir, true)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestWalk_EmptyDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths, err := New(nil, nil).Walk(dir, true)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestWalk_FollowsSymlinkToRegularFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on windows")
	}
	t.Parallel()

	dir := t.TempDir()
	real := filepath.Join(dir, "real.jpg")
	touch(t, real)
	link := filepath.Join(dir, "link.jpg")
	require.NoError(t, os.Symlink(real, link))

	paths, err := New(nil, nil).Walk(dir, true)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestWalk_SkipsSymlinkCycle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on windows")
	}
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o700))
	touch(t, filepath.Join(sub, "a.jpg"))

	cycle := filepath.Join(sub, "loop")
	require.NoError(t, os.Symlink(sub, cycle))

	// Should terminate rather than recurse forever, and still find the
	// one real file.
	paths, err := New(nil, nil).Walk(dir, true)
	require.NoError(t, err)
	assert.Contains(t, paths, filepath.Join(sub, "a.jpg"))
}

func TestWalk_CustomExtensionSet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jpg"))
	touch(t, filepath.Join(dir, "b.foo"))

	paths, err := New([]string{".foo"}, nil).Walk(dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.foo")}, paths)
}

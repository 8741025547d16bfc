package resources

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestResolve_FirstLocationWins(t *testing.T) {
	t.Parallel()

	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(first, "app.properties"), "first")
	writeFile(t, filepath.Join(second, "app.properties"), "second")

	rc := NewContext([]string{first, second}, nil)
	path, err := rc.Resolve("app.properties")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(first, "app.properties"), path)
}

func TestResolve_SkipsFileLocationsAndWildcardMarkers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib", "x.jar"), "jar")
	writeFile(t, filepath.Join(dir, "lib", "app.properties"), "props")

	// A jar location and a wildcard marker both appear in real aggregates;
	// the marker must probe its underlying directory.
	rc := NewContext([]string{
		filepath.Join(dir, "lib", "x.jar"),
		filepath.Join(dir, "lib") + "/*",
	}, nil)

	path, err := rc.Resolve("app.properties")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lib", "app.properties"), path)
}

func TestResolve_FallsBackToAmbientLoader(t *testing.T) {
	t.Parallel()

	ambient := t.TempDir()
	writeFile(t, filepath.Join(ambient, "fallback.txt"), "hello")

	rc := NewContext(nil, os.DirFS(ambient))
	path, err := rc.Resolve("fallback.txt")
	require.NoError(t, err)
	assert.Equal(t, "fallback.txt", path)
}

func TestResolve_NotFound(t *testing.T) {
	t.Parallel()

	rc := NewContext([]string{t.TempDir()}, os.DirFS(t.TempDir()))
	_, err := rc.Resolve("nope.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResourceNotFound))
}

func TestOpen_ReadsDiscoveredResource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "greeting.txt"), "hello components")

	rc := NewContext([]string{dir}, nil)
	f, err := rc.Open("greeting.txt")
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "hello components", string(content))
}

func TestOpen_ReadsFallbackResource(t *testing.T) {
	t.Parallel()

	ambient := t.TempDir()
	writeFile(t, filepath.Join(ambient, "fallback.txt"), "ambient")

	rc := NewContext(nil, os.DirFS(ambient))
	f, err := rc.Open("fallback.txt")
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "ambient", string(content))
}

func TestLocations_DefensiveCopies(t *testing.T) {
	t.Parallel()

	source := []string{"/a", "/b"}
	rc := NewContext(source, os.DirFS(t.TempDir()))

	// Mutating neither the input slice nor a returned copy affects the context.
	source[0] = "mutated"
	got := rc.Locations()
	got[1] = "mutated"

	assert.Equal(t, []string{"/a", "/b"}, rc.Locations())
}

package app

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bootstack/internal/component"
	"github.com/vk/bootstack/internal/container"
)

// writeFixtureRoot lays out a minimal application root with one component
// contributing a single jar, returning the expected resource location.
func writeFixtureRoot(t *testing.T, root string) string {
	t.Helper()
	dir := filepath.Join(root, "auth")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "auth.jar"), []byte("x"), 0600))
	descriptor := `
component {
  classpath "jar" { location = "lib/auth.jar" }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, component.DescriptorFileName), []byte(descriptor), 0600))

	rootDescriptor := filepath.Join(root, container.RootLoadPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(rootDescriptor), 0755))
	require.NoError(t, os.WriteFile(rootDescriptor, []byte(`load "single" { location = "auth" }`), 0600))
	return dir + "/lib/auth.jar"
}

func newTestApp(t *testing.T, root string, outW, logW *bytes.Buffer) *App {
	t.Helper()
	cfg, err := NewConfig(Config{RootPath: root, LogFormat: "text", LogLevel: "error"})
	require.NoError(t, err)
	a, err := New(outW, logW, cfg)
	require.NoError(t, err)
	return a
}

func TestRun_PrintsResourceLocations(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	loc := writeFixtureRoot(t, root)
	outW, logW := &bytes.Buffer{}, &bytes.Buffer{}

	a := newTestApp(t, root, outW, logW)
	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, fmt.Sprintf("%s\n", loc), outW.String())
	require.NotNil(t, a.Resources())
	assert.Equal(t, []string{loc}, a.Resources().Locations())
}

func TestRun_DiscoveryFailureSurfaces(t *testing.T) {
	t.Parallel()

	outW, logW := &bytes.Buffer{}, &bytes.Buffer{}
	a := newTestApp(t, t.TempDir(), outW, logW)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "component discovery failed")
	assert.Nil(t, a.Resources())
	assert.Empty(t, outW.String())
}

func TestHealthHandler_ReflectsReadiness(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFixtureRoot(t, root)
	outW, logW := &bytes.Buffer{}, &bytes.Buffer{}
	a := newTestApp(t, root, outW, logW)

	// Before discovery the endpoint reports unavailable.
	rec := httptest.NewRecorder()
	a.healthHandler(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, 503, rec.Code)

	require.NoError(t, a.Run(context.Background()))

	rec = httptest.NewRecorder()
	a.healthHandler(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "loaded=1")
}

func TestNewConfig_RequiresRootPath(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{RootPath: "/some/root"})
	require.NoError(t, err)
	assert.Equal(t, "/some/root", cfg.RootPath)
}

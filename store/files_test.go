package store

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeBundle(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestParseBundle(t *testing.T) {
	t.Parallel()

	bundle, err := ParseBundle("inline", []byte(`
en:
  greeting: "Hello, {name}!"
  cart:
    items: "{count, plural, one {# item} other {# items}}"
pt_BR:
  greeting: "Olá, {name}!"
`))
	require.NoError(t, err)

	assert.Equal(t, "Hello, {name}!", bundle["en"]["greeting"])
	assert.Equal(t, "{count, plural, one {# item} other {# items}}", bundle["en"]["cart.items"])
	assert.Equal(t, "Olá, {name}!", bundle["pt-br"]["greeting"])
}

func TestParseBundle_invalid(t *testing.T) {
	t.Parallel()

	_, err := ParseBundle("broken", []byte("en: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	_, err = ParseBundle("scalar", []byte("en: just a string"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must map to translations")
}

func TestFiles_LoadMergesBundles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeBundle(t, filepath.Join(dir, "a.yaml"), "en:\n  a: \"A\"\n  shared: \"from a\"\n")
	writeBundle(t, filepath.Join(dir, "b.yaml"), "en:\n  shared: \"from b\"\nes:\n  a: \"A es\"\n")

	files, err := NewFiles(FilesConfig{
		Globs:  []string{filepath.Join(dir, "*.yaml"), filepath.Join(dir, "a.yaml")},
		Logger: quietLogger(),
	})
	require.NoError(t, err)

	paths, err := files.Paths()
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	pattern, _ := files.Resolve("en", "shared").Pattern()
	assert.Equal(t, "from b", pattern)
	pattern, _ = files.Resolve("es", "a").Pattern()
	assert.Equal(t, "A es", pattern)
	assert.Equal(t, []string{"en", "es"}, files.Locales())
	assert.False(t, files.LastLoadedAt().IsZero())
}

func TestFiles_ReloadKeepsPreviousOnFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "en.yaml")
	writeBundle(t, path, "en:\n  greeting: \"Hello\"\n")

	files, err := NewFiles(FilesConfig{
		Globs:      []string{filepath.Join(dir, "*.yaml")},
		Retries:    2,
		RetryDelay: time.Millisecond,
		Logger:     quietLogger(),
	})
	require.NoError(t, err)
	loadedAt := files.LastLoadedAt()

	writeBundle(t, path, "en: [broken")
	require.Error(t, files.Reload())

	pattern, ok := files.Resolve("en", "greeting").Pattern()
	require.True(t, ok)
	assert.Equal(t, "Hello", pattern)
	assert.Equal(t, loadedAt, files.LastLoadedAt())

	writeBundle(t, path, "en:\n  greeting: \"Hi again\"\n")
	require.NoError(t, files.Reload())
	pattern, _ = files.Resolve("en", "greeting").Pattern()
	assert.Equal(t, "Hi again", pattern)
}

func TestFiles_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := NewFiles(FilesConfig{Globs: []string{"[bad"}, Logger: quietLogger()})
	require.Error(t, err)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.yaml")
	writeBundle(t, path, "en:\n  greeting: \"Hello\"\n")

	files, err := NewFiles(FilesConfig{
		Globs:  []string{filepath.Join(dir, "*.yaml")},
		Logger: quietLogger(),
	})
	require.NoError(t, err)

	w, err := NewWatcher(files, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan error, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(err error) { reloaded <- err })
	}()

	time.Sleep(50 * time.Millisecond)
	writeBundle(t, path, "en:\n  greeting: \"Howdy\"\n")

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	pattern, _ := files.Resolve("en", "greeting").Pattern()
	assert.Equal(t, "Howdy", pattern)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	t.Parallel()

	files := &Files{Memory: NewMemory(), cfg: FilesConfig{
		Globs:  []string{filepath.Join(t.TempDir(), "nope", "*.yaml")},
		Logger: quietLogger(),
	}}
	_, err := NewWatcher(files, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}

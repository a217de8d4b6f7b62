package prompt_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pmorgner/imagine/internal/prompt"
	"github.com/samber/do"
	"github.com/stretchr/testify/require"
)

func newTemplator(t *testing.T, dir string) *prompt.Templator {
	t.Helper()
	injector := do.New()
	do.ProvideNamedValue[string](injector, "prompt_dir", dir)
	templator, err := prompt.NewTemplator(injector)
	require.NoError(t, err)
	return templator
}

func TestRenderEmbeddedDefaults(t *testing.T) {
	// empty dir, so both templates fall back to the embedded defaults
	templator := newTemplator(t, t.TempDir())

	system, user, err := templator.Render(context.Background(), "2026-08-29")
	require.NoError(t, err)
	require.Contains(t, system, "2026-08-29")
	require.Contains(t, user, "2026-08-29")
	require.NotContains(t, system, "{{")
	require.NotContains(t, user, "{{")
}

func TestRenderFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "daily-imagine-sys-prompt.tmpl"), []byte("SYS {{.CurrentDate}}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "daily-imagine-user-prompt.tmpl"), []byte("USER {{.CurrentDate}}"), 0o644))

	system, user, err := newTemplator(t, dir).Render(context.Background(), "2026-08-29")
	require.NoError(t, err)
	require.Equal(t, "SYS 2026-08-29", system)
	require.Equal(t, "USER 2026-08-29", user)
}

func TestRenderDirectoryOverridesOneTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "daily-imagine-user-prompt.tmpl"), []byte("USER ONLY"), 0o644))

	system, user, err := newTemplator(t, dir).Render(context.Background(), "2026-08-29")
	require.NoError(t, err)
	require.Contains(t, system, "2026-08-29")
	require.Equal(t, "USER ONLY", user)
}

func TestRenderBadTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "daily-imagine-sys-prompt.tmpl"), []byte("{{.Broken"), 0o644))

	_, _, err := newTemplator(t, dir).Render(context.Background(), "2026-08-29")
	require.Error(t, err)
}

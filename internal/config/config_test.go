package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avl2step/internal/airfoil"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads settings from JSON", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "avl2step.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"points": 40,
			"keep_last_surface": true,
			"preview": "top.webp"
		}`), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 40, cfg.Points)
		assert.True(t, cfg.KeepLastSurface)
		assert.False(t, cfg.Strict)
		assert.Equal(t, "top.webp", cfg.Preview)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{points:"), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("flags override the file", func(t *testing.T) {
		t.Parallel()
		cfg := Config{Points: 40, Preview: "file.webp"}
		cfg.Resolve(Flags{Points: 120, Strict: true, Quiet: true})
		assert.Equal(t, 120, cfg.Points)
		assert.True(t, cfg.Strict)
		assert.True(t, cfg.Quiet)
		assert.Equal(t, "file.webp", cfg.Preview, "unset flags keep file values")
	})

	t.Run("defaults fill in afterwards", func(t *testing.T) {
		t.Parallel()
		var cfg Config
		cfg.Resolve(Flags{})
		assert.Equal(t, airfoil.DefaultPoints, cfg.Points)
		assert.False(t, cfg.KeepLastSurface)
	})
}

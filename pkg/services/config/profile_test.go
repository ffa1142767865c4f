package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		profile, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), profile)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		content := "year_start: 2020\nyear_end: 2022\nsku_threshold: 50000\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		profile, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"2020", "2021", "2022"}, profile.Years())
		assert.Equal(t, 50000.0, profile.SKUThreshold)
		// untouched fields keep their defaults
		assert.Equal(t, Default().Endpoint, profile.Endpoint)
	})

	t.Run("year range must be ordered", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		require.NoError(t, os.WriteFile(path, []byte("year_start: 2024\nyear_end: 2020\n"), 0o600))

		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("negative threshold rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sku_threshold: -5\n"), 0o600))

		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("missing file reported", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}

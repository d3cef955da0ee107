package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/pkg/routedoc"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfig(t *testing.T) {
	t.Run("reads every key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		writeFile(t, path, `directories = ["./api/...", "./admin"]
view = "public"
exclude_sections = ["Internal"]
format = "yaml"
output = "docs/api.yaml"
extra = "extra.yaml"
module = "example.com/shop"
verbose = true
`)

		cfg, err := LoadConfig(path, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"./api/...", "./admin"}, cfg.Directories)
		assert.Equal(t, "public", cfg.View)
		assert.Equal(t, []string{"Internal"}, cfg.ExcludeSections)
		assert.Equal(t, "yaml", cfg.Format)
		assert.Equal(t, "docs/api.yaml", cfg.Output)
		assert.Equal(t, "extra.yaml", cfg.Extra)
		assert.Equal(t, "example.com/shop", cfg.ModuleName)
		assert.True(t, cfg.Verbose)
		assert.False(t, cfg.Quiet)
	})

	t.Run("missing optional file", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), DefaultConfigFile), false)
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("missing required file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "custom.toml"), true)
		require.Error(t, err)
		assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	})

	t.Run("malformed file reports position", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		writeFile(t, path, "view = \"public\"\nformat = \n")

		_, err := LoadConfig(path, true)
		require.Error(t, err)

		var rde errors.RouteDocError
		require.ErrorAs(t, err, &rde)
		assert.Equal(t, errors.ConfigurationErrorCode, rde.ErrorCode())
		assert.Equal(t, path, rde.Location().File)
		assert.Positive(t, rde.Location().Line)
	})
}

func TestConfig_LoadEnv(t *testing.T) {
	t.Setenv(EnvView, "partner")
	t.Setenv(EnvFormat, "YAML")

	cfg := &Config{View: "public", Format: "json"}
	cfg.LoadEnv()
	assert.Equal(t, "partner", cfg.View)
	assert.Equal(t, "YAML", cfg.Format)

	require.NoError(t, cfg.Finalize())
	assert.Equal(t, FormatYAML, cfg.Format)
}

func TestConfig_Merge(t *testing.T) {
	base := &Config{
		Directories:     []string{"./..."},
		View:            "public",
		ExcludeSections: []string{"Internal"},
		Format:          "json",
		Output:          "api.json",
	}
	base.Merge(&Config{
		View:    "admin",
		Extra:   "extra.yaml",
		Verbose: true,
	})

	assert.Equal(t, []string{"./..."}, base.Directories)
	assert.Equal(t, "admin", base.View)
	assert.Equal(t, []string{"Internal"}, base.ExcludeSections)
	assert.Equal(t, "json", base.Format)
	assert.Equal(t, "api.json", base.Output)
	assert.Equal(t, "extra.yaml", base.Extra)
	assert.True(t, base.Verbose)
}

func TestConfig_Finalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, cfg.Finalize())
		assert.Equal(t, []string{"./..."}, cfg.Directories)
		assert.Equal(t, routedoc.DefaultView, cfg.View)
		assert.Equal(t, FormatJSON, cfg.Format)
	})

	t.Run("unsupported format", func(t *testing.T) {
		cfg := &Config{Format: "xml"}
		err := cfg.Finalize()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format 'xml'")

		var rde errors.RouteDocError
		require.ErrorAs(t, err, &rde)
		assert.NotEmpty(t, rde.Suggestions())
	})

	t.Run("verbose and quiet", func(t *testing.T) {
		cfg := &Config{Verbose: true, Quiet: true}
		err := cfg.Finalize()
		require.Error(t, err)
		assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	c, err := Decode(`
base_dir = "styles"
out_dir = "out"
workers = 3
cache_capacity = 12
output_format = "bmp"
`)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		BaseDir:       "styles",
		OutDir:        "out",
		Workers:       3,
		CacheCapacity: 12,
		OutputFormat:  FormatBMP,
	}, c)
}

func TestDecodeDefaults(t *testing.T) {
	c, err := Decode(`workers = 2`)
	require.NoError(t, err)
	assert.Equal(t, ".", c.BaseDir)
	assert.Equal(t, 100, c.CacheCapacity)
	assert.Equal(t, FormatPNG, c.OutputFormat)
	assert.Equal(t, 2, c.Workers)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(`workers = 0`)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "workers", cfgErr.Field)

	_, err = Decode(`output_format = "gif"`)
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "output_format", cfgErr.Field)

	_, err = Decode(`workers = "many"`)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.toml")
	require.NoError(t, os.WriteFile(path, []byte("out_dir = \"tiles\"\nunknown = 1\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tiles", c.OutDir)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestLocator(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tif"), nil, 0o644))

	l := NewLocator(&Config{BaseDir: dir, OutDir: filepath.Join(dir, "out")})
	assert.Equal(t, filepath.Join(dir, "a.tif"), l.Find("a.tif"))
	assert.Empty(t, l.MissingFiles())

	assert.Equal(t, filepath.Join(dir, "b.tif"), l.Find("b.tif"))
	assert.Equal(t, []string{filepath.Join(dir, "b.tif")}, l.MissingFiles())

	assert.Equal(t, filepath.Join(dir, "out", "a.png"), l.Output("a.png"))
	assert.Equal(t, "/abs/a.png", l.Output("/abs/a.png"))

	l.UseRelPaths(true)
	assert.Equal(t, filepath.Join("..", "a.tif"), l.Find("a.tif"))
}

// Package config loads the settings of the batch renderer.
package config

import (
	"fmt"
	"log"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/flywave/go-rasterstyle/classifier"
)

const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

type Config struct {
	BaseDir       string `toml:"base_dir"`
	OutDir        string `toml:"out_dir"`
	Workers       int    `toml:"workers"`
	CacheCapacity int    `toml:"cache_capacity"`
	OutputFormat  string `toml:"output_format"`
}

func Default() *Config {
	return &Config{
		BaseDir:       ".",
		OutDir:        ".",
		Workers:       runtime.NumCPU(),
		CacheCapacity: classifier.DefaultCacheCapacity,
		OutputFormat:  FormatPNG,
	}
}

type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Msg)
}

// Validate checks c for values the renderer cannot use.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return &ConfigError{"workers", "must be at least 1"}
	}
	if c.CacheCapacity < 1 {
		return &ConfigError{"cache_capacity", "must be at least 1"}
	}
	switch c.OutputFormat {
	case FormatPNG, FormatBMP:
	default:
		return &ConfigError{"output_format", fmt.Sprintf("%q is not png or bmp", c.OutputFormat)}
	}
	return nil
}

// Decode parses TOML data on top of the defaults.
func Decode(data string) (*Config, error) {
	c := Default()
	md, err := toml.Decode(data, c)
	if err != nil {
		return nil, err
	}
	return c, finish(c, md)
}

// Load reads the TOML file at path on top of the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, finish(c, md)
}

func finish(c *Config, md toml.MetaData) error {
	for _, k := range md.Undecoded() {
		log.Printf("config: ignoring unknown key %s", k)
	}
	return c.Validate()
}

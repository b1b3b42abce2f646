// Package config loads verilox settings from an optional verilox.yaml,
// verilox.yml or verilox.toml file, with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Filenames are tried in order; the first one present wins.
var Filenames = []string{"verilox.yaml", "verilox.yml", "verilox.toml"}

const envPrefix = "VERILOX_"

type Config struct {
	// ChunkSize is the minimum number of bytes read per refill when
	// streaming a file through the parser.
	ChunkSize  int      `yaml:"chunk_size" toml:"chunk_size"`
	// Verbosity follows commonlog: 0 logs notices, each step up adds a
	// level and -4 turns logging off.
	Verbosity  int      `yaml:"verbosity" toml:"verbosity"`
	LogFile    string   `yaml:"log_file" toml:"log_file"`
	Color      string   `yaml:"color" toml:"color"`
	Format     string   `yaml:"format" toml:"format"`
	Extensions []string `yaml:"extensions" toml:"extensions"`
	Exclude    []string `yaml:"exclude" toml:"exclude"`

	// Path is the file the configuration was read from, if any.
	Path string `yaml:"-" toml:"-"`
}

func Default() *Config {
	return &Config{
		ChunkSize:  4096,
		Color:      "auto",
		Format:     "tree",
		Extensions: []string{".v", ".sv", ".vh", ".svh"},
		Exclude:    []string{".git", "node_modules"},
	}
}

// Load reads the configuration for the current directory.
func Load() (*Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return LoadFrom(dir)
}

// LoadFrom reads the first config file found in dir. Without one, the
// defaults are used. Environment overrides apply in both cases.
func LoadFrom(dir string) (*Config, error) {
	for _, name := range Filenames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		return LoadFile(path)
	}
	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadFile reads path, choosing the decoder by its extension.
func LoadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	cfg.Path = path

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(envPrefix + "CHUNK_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCHUNK_SIZE: %w", envPrefix, err)
		}
		c.ChunkSize = n
	}
	if v, ok := os.LookupEnv(envPrefix + "COLOR"); ok {
		c.Color = v
	}
	if v, ok := os.LookupEnv(envPrefix + "FORMAT"); ok {
		c.Format = v
	}
	if v, ok := os.LookupEnv(envPrefix + "LOG_FILE"); ok {
		c.LogFile = v
	}
	return nil
}

var (
	colors  = []string{"auto", "always", "never"}
	formats = []string{"tree", "json"}
)

func (c *Config) Validate() error {
	var errs []error
	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize))
	}
	if c.Verbosity < -4 {
		errs = append(errs, fmt.Errorf("verbosity must be at least -4, got %d", c.Verbosity))
	}
	if !slices.Contains(colors, c.Color) {
		errs = append(errs, fmt.Errorf("color must be one of %s, got %q", strings.Join(colors, ", "), c.Color))
	}
	if !slices.Contains(formats, c.Format) {
		errs = append(errs, fmt.Errorf("format must be one of %s, got %q", strings.Join(formats, ", "), c.Format))
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("extension %q must start with '.'", ext))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Matches reports whether path has one of the configured extensions.
func (c *Config) Matches(path string) bool {
	return slices.Contains(c.Extensions, strings.ToLower(filepath.Ext(path)))
}

// Excluded reports whether a directory or file name is skipped when walking.
func (c *Config) Excluded(name string) bool {
	return slices.Contains(c.Exclude, name)
}

// LogPath returns the log file for commonlog.Configure, or nil for stderr.
func (c *Config) LogPath() *string {
	if c.LogFile == "" {
		return nil
	}
	path := c.LogFile
	return &path
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/setanarut/texgen"
	"github.com/setanarut/texgen/pattern"
)

var (
	homePath       string
	configHomePath string
	stateHomePath  string
)

const (
	DefaultSeed        uint64 = 42
	DefaultOutDir             = "assets/textures"
	DefaultCompression        = "best"
	DefaultSize               = 256
)

type Config struct {
	// Seed for the single generator shared by all textures, consumed in order
	Seed uint64 `yaml:"seed" json:"seed"`
	// Directory the textures are written to
	OutDir string `yaml:"outDir" json:"outDir"`
	// zlib effort for the IDAT stream: best, default, speed or none
	Compression string `yaml:"compression" json:"compression"`
	// Textures to generate, in order
	Textures []Texture `yaml:"textures" json:"textures"`
}

type Texture struct {
	Name    string `yaml:"name" json:"name"`       // output file name, relative to OutDir
	Pattern string `yaml:"pattern" json:"pattern"` // registered pattern name
	Width   int    `yaml:"width" json:"width"`
	Height  int    `yaml:"height" json:"height"`
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		homePath = os.TempDir()
	}
}

// Default returns the static and metal textures at 256x256 with seed 42.
func Default() *Config {
	return &Config{
		Seed:        DefaultSeed,
		OutDir:      DefaultOutDir,
		Compression: DefaultCompression,
		Textures: []Texture{
			{Name: "static.png", Pattern: "static", Width: DefaultSize, Height: DefaultSize},
			{Name: "metal.png", Pattern: "metal", Width: DefaultSize, Height: DefaultSize},
		},
	}
}

// Load loads the configuration.
// If path is empty it searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/texgen/config.yml
// 2. $XDG_CONFIG_HOME/texgen/config.yaml
// If no config file is found, it returns Default().
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	var candidates []string
	if path != "" {
		candidates = []string{path}
	} else {
		base := filepath.Join(configPath(), "config")
		candidates = []string{base + ".yml", base + ".yaml"}
	}
	for _, p := range candidates {
		b, err := os.ReadFile(p)
		if err != nil {
			if path != "" {
				return nil, fmt.Errorf("failed to read config %s: %w", p, err)
			}
			continue
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
		return cfg, nil
	}
	return cfg, nil
}

// Validate checks sizes, pattern names, output names and compression level.
func (c *Config) Validate() error {
	if _, err := texgen.ParseCompressionLevel(c.Compression); err != nil {
		return err
	}
	if len(c.Textures) == 0 {
		return fmt.Errorf("no textures configured")
	}
	seen := map[string]struct{}{}
	for i, t := range c.Textures {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("textures[%d]: name is required", i)
		}
		if _, ok := seen[t.Name]; ok {
			return fmt.Errorf("textures[%d]: duplicate name %q", i, t.Name)
		}
		seen[t.Name] = struct{}{}
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("textures[%d] %s: invalid size %dx%d", i, t.Name, t.Width, t.Height)
		}
		if _, err := pattern.Lookup(t.Pattern); err != nil {
			return fmt.Errorf("textures[%d] %s: %w", i, t.Name, err)
		}
	}
	return nil
}

// Filter keeps only the textures whose pattern is in patterns. An empty list keeps all.
func (c *Config) Filter(patterns []string) {
	if len(patterns) == 0 {
		return
	}
	var kept []Texture
	for _, t := range c.Textures {
		for _, p := range patterns {
			if t.Pattern == p {
				kept = append(kept, t)
				break
			}
		}
	}
	c.Textures = kept
}

// Resize overrides the width and/or height of every texture. Zero leaves the value alone.
func (c *Config) Resize(width, height int) {
	for i := range c.Textures {
		if width != 0 {
			c.Textures[i].Width = width
		}
		if height != 0 {
			c.Textures[i].Height = height
		}
	}
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, "texgen")
	} else {
		configHomePath = filepath.Join(homePath, ".config", "texgen")
	}
	return configHomePath
}

// StateHomePath returns the path to the state directory, where error dumps are written.
func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, "texgen")
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", "texgen")
	}
	return stateHomePath
}

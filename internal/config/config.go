// Package config loads and applies .findmerge.yml configuration files
// for thresholds, scorer weights, and output settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/CertiKProject/findmerge/internal/similarity"
)

// Config represents the .findmerge.yml configuration file. Flags take
// precedence over config values.
type Config struct {
	Threshold  float64            `yaml:"threshold,omitempty"`
	LineWindow int                `yaml:"line_window,omitempty"`
	Weights    similarity.Weights `yaml:"weights,omitempty"`
	Workers    int                `yaml:"workers,omitempty"`
	Format     string             `yaml:"format,omitempty"`
	FailOn     string             `yaml:"fail_on,omitempty"`
}

// Load reads the .findmerge.yml or .findmerge.yaml config file from the
// given path. If path is a file, its parent directory is used. If no
// config file is found, it returns a zero Config (not an error).
func Load(dir string) (Config, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for _, name := range []string{".findmerge.yml", ".findmerge.yaml"} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if info.Size() > 1<<20 {
			return Config{}, fmt.Errorf("config file too large: %s (%d bytes, max 1 MB)", path, info.Size())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		if err := cfg.validate(path); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	return Config{}, nil
}

func (c Config) validate(path string) error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%s: threshold %v outside [0, 1]", path, c.Threshold)
	}
	for name, w := range map[string]float64{
		"path":       c.Weights.Path,
		"line":       c.Weights.Line,
		"suggestion": c.Weights.Suggestion,
		"spec_ref":   c.Weights.SpecRef,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s: weight %s=%v outside [0, 1]", path, name, w)
		}
	}
	if c.LineWindow < 0 {
		return fmt.Errorf("%s: line_window %d is negative", path, c.LineWindow)
	}
	return nil
}

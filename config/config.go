// Package config loads the service configuration from YAML or JSON files
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/DRNaser/shift-optimizer-sub007/core/metrics"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// Config is the root configuration of the optimizer service.
type Config struct {
	Solver  model.SolverConfig `json:"solver"`
	Metrics metrics.Config     `json:"metrics"`
}

// Load reads the configuration from path. Environment variables prefixed
// with ROSTER_ override file values, with "__" as the nesting separator.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// The callback rewrites "__" to the "." delimiter so koanf nests the keys.
	if err := k.Load(env.Provider("ROSTER_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "roster_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Solver.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied, for callers
// running without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.Solver.SetDefaults()
	cfg.Metrics.SetDefaults()
	return cfg
}

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/rebelay/core/metrics"
	"github.com/kilianp07/rebelay/core/timing"
)

// EnvPrefix is the prefix of environment overrides. Nested keys are
// separated by a double underscore, e.g. REBELAY_MODEL__ASCENT_SPEED.
const EnvPrefix = "REBELAY_"

type Config struct {
	Model   ModelConfig    `json:"model"`
	Sweep   SweepConfig    `json:"sweep"`
	Plot    PlotConfig     `json:"plot"`
	Logging LoggingConfig  `json:"logging"`
	Metrics metrics.Config `json:"metrics"`
	Server  ServerConfig   `json:"server"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Model: ModelConfig{
		AscentSpeed:    timing.DefaultAscentSpeed,
		DescentSpeed:   timing.DefaultDescentSpeed,
		TransitionTime: timing.DefaultTransitionTime,
	}}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills unset fields of every section.
func (c *Config) SetDefaults() {
	c.Model.SetDefaults()
	c.Sweep.SetDefaults()
	c.Plot.SetDefaults()
	c.Logging.SetDefaults()
	c.Server.SetDefaults()
}

// Validate checks every section and joins the failures.
func (c Config) Validate() error {
	return errors.Join(
		c.Model.Validate(),
		c.Sweep.Validate(),
		c.Plot.Validate(),
		c.Logging.Validate(),
		c.Server.Validate(),
	)
}

// Load reads the yaml or json file at path, applies REBELAY_ environment
// overrides and validates the result. An empty path loads the defaults and
// the environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
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
	}
	// Optional environment overrides
	prefix := strings.ToLower(EnvPrefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), prefix)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	// Keys absent from the sources keep their default values, so an explicit
	// zero (e.g. transition_time: 0) survives.
	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

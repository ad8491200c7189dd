// Package config loads cavegen settings. Values are layered in this order:
// defaults, then a YAML file, then CAVEGEN_* environment variables, then
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"cave-ca/internal/logging"
	"cave-ca/internal/terrain"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no explicit config
// path is given.
const DefaultFile = "cavegen.yaml"

// Config contains all cavegen settings.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GeneratorConfig configures the map simulator.
type GeneratorConfig struct {
	// Water, Swamp and Rock are the initial fractions; they must add up to 1.
	Water float64 `yaml:"water"`
	Swamp float64 `yaml:"swamp"`
	Rock  float64 `yaml:"rock"`

	// Size is the length and height of the square grid.
	Size int `yaml:"size"`

	Seed int64 `yaml:"seed"`

	// Steps is the number of smoothing generations to run. The viewer treats
	// 0 as unlimited.
	Steps int `yaml:"steps"`
}

// ViewerConfig configures the ebiten window.
type ViewerConfig struct {
	Scale int `yaml:"scale"`
	// Pause is how long each generation stays on screen.
	Pause time.Duration `yaml:"pause"`
	TPS   int           `yaml:"tps"`
}

// LoggingConfig configures the operational logger.
type LoggingConfig struct {
	// Level is "info" (default), "debug" or "trace".
	Level string `yaml:"level"`
}

// Default returns a Config with the stock settings.
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Water: 0.5,
			Swamp: 0.3,
			Rock:  0.2,
			Size:  100,
			Seed:  100,
			Steps: 20,
		},
		Viewer: ViewerConfig{
			Scale: 6,
			Pause: time.Second,
			TPS:   60,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Distribution returns the generator fractions as a terrain.Distribution.
func (c *Config) Distribution() terrain.Distribution {
	return terrain.Distribution{Water: c.Generator.Water, Swamp: c.Generator.Swamp, Rock: c.Generator.Rock}
}

// Load builds a Config from defaults, the YAML file at path (or DefaultFile
// when path is empty and that file exists) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = fileCfg
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys missing
// from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration can build a simulator and viewer.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Distribution().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Generator.Size < terrain.MinSize {
		errs = append(errs, fmt.Errorf("size must be at least %d, got %d", terrain.MinSize, c.Generator.Size))
	}
	if c.Generator.Steps < 0 {
		errs = append(errs, fmt.Errorf("steps must be non-negative, got %d", c.Generator.Steps))
	}
	if c.Viewer.Scale < 1 {
		errs = append(errs, fmt.Errorf("scale must be at least 1, got %d", c.Viewer.Scale))
	}
	if c.Viewer.Pause < 0 {
		errs = append(errs, fmt.Errorf("pause must be non-negative, got %v", c.Viewer.Pause))
	}
	if c.Viewer.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.Viewer.TPS))
	}
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("invalid log level: %s (valid: info, debug, trace)", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// RegisterFlags defines the flags ApplyFlags understands on fs, using the
// stock defaults for help output.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Float64("water", d.Generator.Water, "initial water fraction")
	fs.Float64("swamp", d.Generator.Swamp, "initial swamp fraction")
	fs.Float64("rock", d.Generator.Rock, "initial rock fraction")
	fs.Int("size", d.Generator.Size, "grid length and height")
	fs.Int64("seed", d.Generator.Seed, "random seed")
	fs.Int("steps", d.Generator.Steps, "smoothing generations to run")
	fs.Int("scale", d.Viewer.Scale, "viewer pixels per cell")
	fs.Duration("pause", d.Viewer.Pause, "viewer pause between generations")
	fs.Int("tps", d.Viewer.TPS, "viewer ticks per second")
	fs.String("log-level", d.Logging.Level, "log level: info, debug or trace")
}

// ApplyFlags copies every flag the user explicitly set on fs into c, so
// flags win over the file and environment but unset flags do not clobber
// them.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err != nil || fs.Lookup(name) == nil || !fs.Changed(name) {
			return
		}
		if applyErr := apply(); applyErr != nil {
			err = fmt.Errorf("flag --%s: %w", name, applyErr)
		}
	}
	set("water", func() (e error) { c.Generator.Water, e = fs.GetFloat64("water"); return })
	set("swamp", func() (e error) { c.Generator.Swamp, e = fs.GetFloat64("swamp"); return })
	set("rock", func() (e error) { c.Generator.Rock, e = fs.GetFloat64("rock"); return })
	set("size", func() (e error) { c.Generator.Size, e = fs.GetInt("size"); return })
	set("seed", func() (e error) { c.Generator.Seed, e = fs.GetInt64("seed"); return })
	set("steps", func() (e error) { c.Generator.Steps, e = fs.GetInt("steps"); return })
	set("scale", func() (e error) { c.Viewer.Scale, e = fs.GetInt("scale"); return })
	set("pause", func() (e error) { c.Viewer.Pause, e = fs.GetDuration("pause"); return })
	set("tps", func() (e error) { c.Viewer.TPS, e = fs.GetInt("tps"); return })
	set("log-level", func() (e error) { c.Logging.Level, e = fs.GetString("log-level"); return })
	return err
}

// applyEnvOverrides applies CAVEGEN_* environment variables to the config.
func applyEnvOverrides(c *Config) error {
	floats := map[string]*float64{
		"CAVEGEN_WATER": &c.Generator.Water,
		"CAVEGEN_SWAMP": &c.Generator.Swamp,
		"CAVEGEN_ROCK":  &c.Generator.Rock,
	}
	for key, dst := range floats {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", key, err)
			}
			*dst = f
		}
	}

	ints := map[string]*int{
		"CAVEGEN_SIZE":  &c.Generator.Size,
		"CAVEGEN_STEPS": &c.Generator.Steps,
		"CAVEGEN_SCALE": &c.Viewer.Scale,
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", key, err)
			}
			*dst = n
		}
	}

	if v := os.Getenv("CAVEGEN_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing CAVEGEN_SEED: %w", err)
		}
		c.Generator.Seed = n
	}
	if v := os.Getenv("CAVEGEN_PAUSE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing CAVEGEN_PAUSE: %w", err)
		}
		c.Viewer.Pause = d
	}
	if v := os.Getenv("CAVEGEN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

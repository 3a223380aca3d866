package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSteps      = 10
	DefaultWorkers    = 1
	DefaultDataDir    = ".signsim"
	DefaultCycleLimit = 10_000_000
)

var ErrNoPositions = errors.New("config: no initial positions")

type Config struct {
	Name       string `yaml:"name"`
	Positions  []int  `yaml:"positions"`
	Steps      int    `yaml:"steps"`
	Workers    int    `yaml:"workers"`
	DataDir    string `yaml:"data_dir"`
	CycleLimit int    `yaml:"cycle_limit"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "run",
		Steps:      DefaultSteps,
		Workers:    DefaultWorkers,
		DataDir:    DefaultDataDir,
		CycleLimit: DefaultCycleLimit,
	}
}

// Load reads a YAML config on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := decode(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides holds the fields present in a config file. Absent fields stay
// nil, so an explicit zero still overrides.
type Overrides struct {
	Name       *string `yaml:"name"`
	Positions  []int   `yaml:"positions"`
	Steps      *int    `yaml:"steps"`
	Workers    *int    `yaml:"workers"`
	DataDir    *string `yaml:"data_dir"`
	CycleLimit *int    `yaml:"cycle_limit"`
}

// Read returns only the fields set in the file, for layering with Override.
func Read(path string) (*Overrides, error) {
	o := &Overrides{}
	if err := decode(path, o); err != nil {
		return nil, err
	}
	return o, nil
}

func decode(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields the simulator does not check itself.
func (c *Config) Validate() error {
	if len(c.Positions) == 0 {
		return ErrNoPositions
	}
	if c.Steps < 0 {
		return fmt.Errorf("config: steps must be non-negative, got %d", c.Steps)
	}
	if c.CycleLimit < 0 {
		return fmt.Errorf("config: cycle_limit must be non-negative, got %d", c.CycleLimit)
	}
	return nil
}

// Apply copies the non-zero fields of other onto c. Presets layer with
// Apply; config files layer with Override.
func (c *Config) Apply(other *Config) {
	if other == nil {
		return
	}
	if other.Name != "" {
		c.Name = other.Name
	}
	if len(other.Positions) > 0 {
		c.Positions = append([]int(nil), other.Positions...)
	}
	if other.Steps != 0 {
		c.Steps = other.Steps
	}
	if other.Workers != 0 {
		c.Workers = other.Workers
	}
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}
	if other.CycleLimit != 0 {
		c.CycleLimit = other.CycleLimit
	}
}

// Override copies every field present in o onto c, zero values included.
func (c *Config) Override(o *Overrides) {
	if o == nil {
		return
	}
	if o.Name != nil {
		c.Name = *o.Name
	}
	if o.Positions != nil {
		c.Positions = append([]int{}, o.Positions...)
	}
	if o.Steps != nil {
		c.Steps = *o.Steps
	}
	if o.Workers != nil {
		c.Workers = *o.Workers
	}
	if o.DataDir != nil {
		c.DataDir = *o.DataDir
	}
	if o.CycleLimit != nil {
		c.CycleLimit = *o.CycleLimit
	}
}

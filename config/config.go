// Package config loads run, generation and variation settings from TOML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	push "github.com/jcorbin/gopush"
)

// Config is the contents of a settings file such as:
//
//	[run]
//	steps = 1000
//	max-depth = 1000
//	workers = 8
//
//	[random]
//	max-points = 50
//	max-depth = 10
//	int-min = -100
//	int-max = 100
//
//	[genetic]
//	max-points = 100
//	mutation-rate = 1
//	crossover-rate = 99
//
//	[weights]
//	"CODE.RAND" = 0
type Config struct {
	Run     Run                `toml:"run"`
	Random  Random             `toml:"random"`
	Genetic Genetic            `toml:"genetic"`
	Weights map[string]float64 `toml:"weights"`
}

// Run bounds each program execution.
type Run struct {
	Steps    int `toml:"steps"`
	MaxDepth int `toml:"max-depth"`
	Workers  int `toml:"workers"`
}

// Random configures the random program generator and literals.
type Random struct {
	Seed          int64   `toml:"seed"`
	MaxPoints     int     `toml:"max-points"`
	MaxDepth      int     `toml:"max-depth"`
	ProgramPoints int     `toml:"program-points"`
	NameWeight    float64 `toml:"name-weight"`
	IntMin        int64   `toml:"int-min"`
	IntMax        int64   `toml:"int-max"`
	FloatMin      float64 `toml:"float-min"`
	FloatMax      float64 `toml:"float-max"`
}

// Genetic configures mutation and crossover.
type Genetic struct {
	MaxPoints     int     `toml:"max-points"`
	MutationRate  float64 `toml:"mutation-rate"`
	CrossoverRate float64 `toml:"crossover-rate"`
}

// Default returns the settings used for anything a file leaves out.
func Default() Config {
	lim := push.DefaultLimits
	return Config{
		Run: Run{
			Steps:    1000,
			MaxDepth: 1000,
		},
		Random: Random{
			Seed:          1,
			MaxPoints:     lim.MaxRandomPoints,
			MaxDepth:      lim.MaxRandomDepth,
			ProgramPoints: lim.MaxProgramPoints,
			NameWeight:    1,
			IntMin:        push.MinRandomInt,
			IntMax:        push.MaxRandomInt,
			FloatMin:      push.MinRandomFloat,
			FloatMax:      push.MaxRandomFloat,
		},
		Genetic: Genetic{
			MaxPoints:     100,
			MutationRate:  1,
			CrossoverRate: 99,
		},
	}
}

// Parse reads TOML settings over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads a settings file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("invalid config")

// Validate checks ranges that the registry cannot check itself.
func (cfg *Config) Validate() error {
	switch {
	case cfg.Run.Steps < 0, cfg.Run.MaxDepth < 0, cfg.Run.Workers < 0:
		return fmt.Errorf("%w: negative run budget %+v", ErrInvalid, cfg.Run)
	case cfg.Random.MaxPoints < 1:
		return fmt.Errorf("%w: random max-points must be positive", ErrInvalid)
	case cfg.Random.MaxDepth < 0:
		return fmt.Errorf("%w: negative random max-depth", ErrInvalid)
	case cfg.Random.IntMin > cfg.Random.IntMax, cfg.Random.FloatMin > cfg.Random.FloatMax:
		return fmt.Errorf("%w: random literal range is empty", ErrInvalid)
	case cfg.Genetic.MutationRate < 0, cfg.Genetic.CrossoverRate < 0:
		return fmt.Errorf("%w: negative genetic rate", ErrInvalid)
	case cfg.Genetic.MutationRate+cfg.Genetic.CrossoverRate == 0:
		return fmt.Errorf("%w: mutation and crossover rates are both zero", ErrInvalid)
	}
	return nil
}

// Instructions returns the standard instruction set with literal ranges
// taken from cfg.
func (cfg *Config) Instructions() []push.Instruction {
	defs := push.BaseInstructions()
	for i, def := range defs {
		switch def.Name {
		case "INTEGER.LITERAL":
			defs[i] = push.IntegerLiteral(cfg.Random.IntMin, cfg.Random.IntMax)
		case "FLOAT.LITERAL":
			defs[i] = push.FloatLiteral(cfg.Random.FloatMin, cfg.Random.FloatMax)
		}
	}
	return defs
}

// RegistryOptions configures a registry of the standard instructions.
func (cfg *Config) RegistryOptions() []push.RegistryOption {
	return []push.RegistryOption{
		push.WithInstructions(cfg.Instructions()...),
		push.WithWeights(cfg.Weights),
		push.WithNameWeight(cfg.Random.NameWeight),
		push.WithLimits(push.Limits{
			MaxRandomPoints:  cfg.Random.MaxPoints,
			MaxRandomDepth:   cfg.Random.MaxDepth,
			MaxProgramPoints: cfg.Random.ProgramPoints,
		}),
	}
}

// Registry builds the configured registry, plus any extra options.
func (cfg *Config) Registry(opts ...push.RegistryOption) (*push.Registry, error) {
	return push.NewRegistry(append(cfg.RegistryOptions(), opts...)...)
}

// Variation returns the configured genetic operator mix.
func (cfg *Config) Variation() push.Variation {
	return push.Variation{
		MutationRate:  cfg.Genetic.MutationRate,
		CrossoverRate: cfg.Genetic.CrossoverRate,
		MaxPoints:     cfg.Genetic.MaxPoints,
	}
}

// Batch returns a batch runner with the configured budgets.
func (cfg *Config) Batch() push.Batch {
	return push.Batch{
		Workers:  cfg.Run.Workers,
		Steps:    cfg.Run.Steps,
		MaxDepth: cfg.Run.MaxDepth,
	}
}

// Context returns a context seeded per the configuration; n offsets the seed
// so that parallel contexts draw different streams.
func (cfg *Config) Context(reg *push.Registry, n int64, opts ...push.ContextOption) *push.Context {
	return push.NewContext(reg, append([]push.ContextOption{push.WithSeed(cfg.Random.Seed + n)}, opts...)...)
}

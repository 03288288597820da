package data

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"
	"github.com/samply/gendersim/sim"
)

// Experiment holds the parameters of an experiment as they are read from
// an experiment file, the environment and the command line. Use ToConfig to
// obtain a validated sim.Config.
type Experiment struct {
	Families        int    `yaml:"families" env:"GENDERSIM_FAMILIES"`
	Cap             string `yaml:"cap" env:"GENDERSIM_CAP"`
	Policy          string `yaml:"policy" env:"GENDERSIM_POLICY"`
	TargetBoys      int    `yaml:"targetBoys" env:"GENDERSIM_TARGET_BOYS"`
	FixedCount      *int   `yaml:"fixedCount" env:"GENDERSIM_FIXED_COUNT"`
	Runs            int    `yaml:"runs" env:"GENDERSIM_RUNS"`
	Seed            int64  `yaml:"seed" env:"GENDERSIM_SEED"`
	Workers         int    `yaml:"workers" env:"GENDERSIM_WORKERS"`
	KeepFamilySizes bool   `yaml:"keepFamilySizes" env:"GENDERSIM_KEEP_FAMILY_SIZES"`
}

// DefaultExperiment simulates 10000 couples that stop at the first boy,
// without a cap, 50 times.
func DefaultExperiment() Experiment {
	return Experiment{
		Families:   10000,
		Cap:        "unlimited",
		Policy:     sim.StopAtFirstBoy.String(),
		TargetBoys: sim.DefaultTargetBoys,
		Runs:       50,
		Seed:       42,
		Workers:    1,
	}
}

// ReadExperimentFile reads the YAML experiment file into e. Parameters
// missing in the file keep their current value. Unreadable or invalid files
// are reported as *sim.ConfigError.
func ReadExperimentFile(filename string, e *Experiment) error {
	file, err := os.ReadFile(filename)
	if err != nil {
		return &sim.ConfigError{Field: "experiment file", Err: err}
	}

	if err := yaml.UnmarshalWithOptions(file, e, yaml.DisallowUnknownField()); err != nil {
		return &sim.ConfigError{Field: "experiment file", Err: fmt.Errorf("%s: %w", filename, err)}
	}
	return nil
}

// ApplyEnv overrides parameters from GENDERSIM_* environment variables. A nil
// environment means the environment of the process. Malformed values are
// reported as *sim.ConfigError.
func (e *Experiment) ApplyEnv(environment map[string]string) error {
	if err := env.ParseWithOptions(e, env.Options{Environment: environment}); err != nil {
		return &sim.ConfigError{Field: "environment", Err: err}
	}
	return nil
}

// ToConfig converts the parameters into a validated sim.Config.
func (e Experiment) ToConfig() (sim.Config, error) {
	kind, err := sim.ParseKind(e.Policy)
	if err != nil {
		return sim.Config{}, err
	}

	c, err := sim.ParseCap(e.Cap)
	if err != nil {
		return sim.Config{}, err
	}

	var policy sim.Policy
	switch kind {
	case sim.StopAtFirstBoy:
		policy = sim.FirstBoy()
	case sim.StopAtNBoys:
		policy = sim.NBoys(e.TargetBoys)
	case sim.FixedCount:
		if e.FixedCount == nil {
			return sim.Config{}, &sim.ConfigError{Field: "policy", Err: sim.ErrFixedCountMissing}
		}
		policy = sim.Fixed(*e.FixedCount)
	}

	config := sim.Config{
		Families:        e.Families,
		Cap:             c,
		Policy:          policy,
		Runs:            e.Runs,
		Seed:            e.Seed,
		KeepFamilySizes: e.KeepFamilySizes,
		Workers:         e.Workers,
	}
	if err := config.Validate(); err != nil {
		return sim.Config{}, err
	}
	return config, nil
}

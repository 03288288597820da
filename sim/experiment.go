// Copyright 2026 The Samply Community
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Config describes an experiment: Runs independent runs of Families
// families each, all under the same policy and cap.
type Config struct {
	Families int    `json:"families"`
	Cap      Cap    `json:"cap"`
	Policy   Policy `json:"policy"`
	Runs     int    `json:"runs"`
	Seed     int64  `json:"seed"`

	// KeepFamilySizes retains the size of every family in each RunResult.
	KeepFamilySizes bool `json:"keepFamilySizes,omitempty"`

	// Workers is the number of runs simulated in parallel. Zero means one.
	// The results don't depend on the number of workers.
	Workers int `json:"-"`
}

// Validate checks all parameters of the experiment.
func (c Config) Validate() error {
	if c.Families <= 0 {
		return configError("families", fmt.Errorf("%w, got %d", ErrFamiliesNotPositive, c.Families))
	}
	if c.Runs <= 0 {
		return configError("runs", fmt.Errorf("%w, got %d", ErrRunsNotPositive, c.Runs))
	}
	if c.Workers < 0 {
		return configError("workers", fmt.Errorf("%w, got %d", ErrWorkersNotPositive, c.Workers))
	}
	if err := c.Cap.Validate(); err != nil {
		return err
	}
	return c.Policy.Validate(c.Cap)
}

// Engine runs a validated experiment. Engines are created with New and are
// safe to Run more than once; every Run returns the same results.
type Engine struct {
	config   Config
	logger   *slog.Logger
	observer func(RunResult)
}

type Option func(*Engine)

// WithLogger sets the logger of the engine. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver registers a function called after each finished run. With
// more than one worker it is called from several goroutines and in no
// particular order.
func WithObserver(observer func(RunResult)) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// New validates the configuration and returns an engine for it. On error no
// engine is returned.
func New(config Config, options ...Option) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Workers == 0 {
		config.Workers = 1
	}

	e := &Engine{
		config: config,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// RunExperiment is a shortcut for New followed by Run.
func RunExperiment(ctx context.Context, config Config, options ...Option) ([]RunResult, error) {
	engine, err := New(config, options...)
	if err != nil {
		return nil, err
	}
	return engine.Run(ctx)
}

func (e *Engine) Config() Config {
	return e.config
}

// Run simulates all runs of the experiment and returns their results
// ordered by run index. Each run draws from its own generator seeded with
// the experiment seed and the run index, so results are reproducible and
// independent of the number of workers.
//
// Cancellation of ctx is checked between runs.
func (e *Engine) Run(ctx context.Context) ([]RunResult, error) {
	start := time.Now()
	e.logger.Info("starting experiment",
		"policy", e.config.Policy.String(),
		"cap", e.config.Cap.String(),
		"families", e.config.Families,
		"runs", e.config.Runs,
		"seed", e.config.Seed,
		"workers", e.config.Workers)

	results := make([]RunResult, e.config.Runs)

	if e.config.Workers == 1 {
		for i := range results {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = e.runOne(i + 1)
		}
	} else {
		sem := make(chan bool, e.config.Workers)
		var wg sync.WaitGroup
		for i := range results {
			if ctx.Err() != nil {
				break
			}
			sem <- true
			wg.Add(1)
			go func(i int) {
				defer func() {
					<-sem
					wg.Done()
				}()
				results[i] = e.runOne(i + 1)
			}(i)
		}
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	e.logger.Info("finished experiment", "runs", len(results), "duration", time.Since(start))
	return results, nil
}

func (e *Engine) runOne(run int) RunResult {
	start := time.Now()
	gen := NewGenerator(e.config.Seed, uint64(run))

	result := RunOnce(gen, e.config.Policy, e.config.Cap, e.config.Families, e.config.KeepFamilySizes)
	result.Run = run

	e.logger.Debug("finished run",
		"run", run,
		"boys", result.Boys,
		"girls", result.Girls,
		"boyRatio", result.BoyRatio,
		"duration", time.Since(start))

	if e.observer != nil {
		e.observer(result)
	}
	return result
}

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
	"errors"
	"fmt"
)

var (
	ErrUnknownPolicy         = errors.New("unknown stopping policy")
	ErrFixedCountMissing     = errors.New("fixed-count policy requires a number of children")
	ErrFixedCountNotPositive = errors.New("fixed-count number must be a positive integer")
	ErrFixedCountExceedsCap  = errors.New("fixed-count number exceeds the per-family cap")
	ErrTargetBoysNotPositive = errors.New("number of boys to wait for must be a positive integer")
	ErrFamiliesNotPositive   = errors.New("number of families must be a positive integer")
	ErrRunsNotPositive       = errors.New("number of runs must be a positive integer")
	ErrNegativeCap           = errors.New("cap must be a non-negative integer or unlimited")
	ErrWorkersNotPositive    = errors.New("number of workers must be a positive integer")
)

// ConfigError is returned when an experiment can't be constructed from its
// parameters. No engine exists for a configuration that produced a
// ConfigError.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configError(field string, err error) error {
	return &ConfigError{Field: field, Err: err}
}

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
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sex is the outcome of a single birth.
type Sex int

const (
	Girl Sex = iota
	Boy
)

func (s Sex) String() string {
	if s == Boy {
		return "boy"
	}
	return "girl"
}

// BirthSource yields one birth outcome per call.
type BirthSource interface {
	Next() Sex
}

// Generator draws births from its own seeded PCG stream. A boy is born with
// probability exactly 0.5, independent of all previous births.
//
// Two generators created with the same seed and stream produce identical
// sequences. A Generator is not safe for concurrent use.
type Generator struct {
	birth distuv.Bernoulli
}

// NewGenerator returns a generator for the given seed and stream. Streams
// with different numbers are independent of each other.
func NewGenerator(seed int64, stream uint64) *Generator {
	return &Generator{
		birth: distuv.Bernoulli{P: 0.5, Src: rand.NewPCG(uint64(seed), stream)},
	}
}

// Next draws the next birth.
func (g *Generator) Next() Sex {
	if g.birth.Rand() == 1 {
		return Boy
	}
	return Girl
}

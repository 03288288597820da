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
	"fmt"
	"strings"
)

// Kind names a stopping policy.
type Kind int

const (
	StopAtFirstBoy Kind = iota + 1
	StopAtNBoys
	FixedCount
)

// DefaultTargetBoys is the number of boys a StopAtNBoys family waits for when
// no other number is configured.
const DefaultTargetBoys = 2

var kindNames = map[Kind]string{
	StopAtFirstBoy: "stop-at-boy",
	StopAtNBoys:    "stop-at-n-boys",
	FixedCount:     "fixed-count",
}

var kindAliases = map[string]Kind{
	"stop-at-boy":      StopAtFirstBoy,
	"stop_at_boy":      StopAtFirstBoy,
	"first-boy":        StopAtFirstBoy,
	"stop-at-n-boys":   StopAtNBoys,
	"stop_at_n_boys":   StopAtNBoys,
	"stop-at-two-boys": StopAtNBoys,
	"stop_at_two_boys": StopAtNBoys,
	"n-boys":           StopAtNBoys,
	"fixed-count":      FixedCount,
	"fixed_count":      FixedCount,
	"fixed_children":   FixedCount,
	"fixed":            FixedCount,
}

// KindNames lists the canonical policy names in a stable order.
func KindNames() []string {
	return []string{kindNames[StopAtFirstBoy], kindNames[StopAtNBoys], kindNames[FixedCount]}
}

// ParseKind accepts the canonical names as well as a few common aliases.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return 0, configError("policy", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownPolicy, s,
		strings.Join(KindNames(), ", ")))
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Policy decides when a family stops bearing children. Boys is only used by
// StopAtNBoys and Children only by FixedCount.
type Policy struct {
	Kind     Kind `json:"kind"`
	Boys     int  `json:"boys,omitempty"`
	Children int  `json:"children,omitempty"`
}

// FirstBoy stops after the first boy.
func FirstBoy() Policy {
	return Policy{Kind: StopAtFirstBoy}
}

// NBoys stops after the n-th boy.
func NBoys(n int) Policy {
	return Policy{Kind: StopAtNBoys, Boys: n}
}

// Fixed bears exactly k children, or fewer if the cap is lower.
func Fixed(k int) Policy {
	return Policy{Kind: FixedCount, Children: k}
}

// TargetBoys returns the number of boys after which a family stops, or 0 for
// policies that ignore the sex of the children.
func (p Policy) TargetBoys() int {
	switch p.Kind {
	case StopAtFirstBoy:
		return 1
	case StopAtNBoys:
		return p.Boys
	default:
		return 0
	}
}

// Validate checks the policy against the per-family cap.
func (p Policy) Validate(c Cap) error {
	switch p.Kind {
	case StopAtFirstBoy:
		return nil
	case StopAtNBoys:
		if p.Boys <= 0 {
			return configError("policy", fmt.Errorf("%w, got %d", ErrTargetBoysNotPositive, p.Boys))
		}
		return nil
	case FixedCount:
		if p.Children <= 0 {
			return configError("policy", fmt.Errorf("%w, got %d", ErrFixedCountNotPositive, p.Children))
		}
		if !c.Admits(p.Children) {
			return configError("policy", fmt.Errorf("%w: %d > %s", ErrFixedCountExceedsCap, p.Children, c))
		}
		return nil
	default:
		return configError("policy", fmt.Errorf("%w: %s", ErrUnknownPolicy, p.Kind))
	}
}

func (p Policy) String() string {
	switch p.Kind {
	case StopAtNBoys:
		return fmt.Sprintf("stop-at-%d-boys", p.Boys)
	case FixedCount:
		return fmt.Sprintf("fixed-count(%d)", p.Children)
	default:
		return p.Kind.String()
	}
}

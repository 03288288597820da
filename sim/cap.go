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
	"strconv"
	"strings"
)

// Cap is the maximum number of children a single family may bear. It is
// either Unlimited or a non-negative number set with Limit. The zero value
// is Unlimited.
type Cap struct {
	children int
	limited  bool
}

// Unlimited places no bound on the size of a family.
var Unlimited = Cap{}

const unlimitedText = "unlimited"

// Limit returns a finite cap of n children. Negative caps are rejected by
// Validate.
func Limit(n int) Cap {
	return Cap{children: n, limited: true}
}

// ParseCap parses a number of children or the word "unlimited". The empty
// string is read as unlimited.
func ParseCap(s string) (Cap, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == unlimitedText || s == "none" {
		return Unlimited, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Cap{}, configError("cap", fmt.Errorf("%w, got %q", ErrNegativeCap, s))
	}
	return Limit(n), nil
}

func (c Cap) IsUnlimited() bool {
	return !c.limited
}

// Children returns the finite bound and false for Unlimited.
func (c Cap) Children() (int, bool) {
	return c.children, c.limited
}

// Validate reports finite caps below zero.
func (c Cap) Validate() error {
	if c.limited && c.children < 0 {
		return configError("cap", fmt.Errorf("%w, got %d", ErrNegativeCap, c.children))
	}
	return nil
}

// Allows reports whether a family that already has children may bear
// another one.
func (c Cap) Allows(children int) bool {
	return !c.limited || children < c.children
}

// Admits reports whether a family of size n fits under the cap.
func (c Cap) Admits(n int) bool {
	return !c.limited || n <= c.children
}

// Clamp returns min(n, c).
func (c Cap) Clamp(n int) int {
	if !c.limited || n <= c.children {
		return n
	}
	return c.children
}

func (c Cap) String() string {
	if !c.limited {
		return unlimitedText
	}
	return strconv.Itoa(c.children)
}

func (c Cap) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cap) UnmarshalText(text []byte) error {
	parsed, err := ParseCap(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

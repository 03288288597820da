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

// FamilyOutcome counts the children of one simulated family.
type FamilyOutcome struct {
	Boys, Girls int
}

// Size returns the number of children.
func (f FamilyOutcome) Size() int {
	return f.Boys + f.Girls
}

func (f *FamilyOutcome) add(s Sex) {
	if s == Boy {
		f.Boys++
	} else {
		f.Girls++
	}
}

// SimulateFamily lets a single family bear children until the policy or the
// cap tells it to stop. FixedCount families always bear min(k, cap)
// children. The other policies stop as soon as the target number of boys is
// born or the cap is reached, whichever comes first. A cap of zero draws no
// births at all.
func SimulateFamily(src BirthSource, policy Policy, c Cap) FamilyOutcome {
	var family FamilyOutcome

	if policy.Kind == FixedCount {
		n := c.Clamp(policy.Children)
		for family.Size() < n {
			family.add(src.Next())
		}
		return family
	}

	target := policy.TargetBoys()
	for family.Boys < target && c.Allows(family.Size()) {
		family.add(src.Next())
	}
	return family
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulateFamily_StopAtFirstBoy(t *testing.T) {
	t.Run("StopsAtFirstBoy", func(t *testing.T) {
		src := script(t, "GGGB")
		family := SimulateFamily(src, FirstBoy(), Unlimited)
		assert.Equal(t, FamilyOutcome{Boys: 1, Girls: 3}, family)
		assert.Equal(t, 4, src.drawn())
	})

	t.Run("BoyFirst", func(t *testing.T) {
		family := SimulateFamily(script(t, "B"), FirstBoy(), Limit(5))
		assert.Equal(t, FamilyOutcome{Boys: 1}, family)
	})

	t.Run("CapReached", func(t *testing.T) {
		family := SimulateFamily(script(t, "GGG"), FirstBoy(), Limit(3))
		assert.Equal(t, FamilyOutcome{Girls: 3}, family)
	})
}

func TestSimulateFamily_StopAtNBoys(t *testing.T) {
	t.Run("StopsAtSecondBoy", func(t *testing.T) {
		family := SimulateFamily(script(t, "BGGB"), NBoys(2), Unlimited)
		assert.Equal(t, FamilyOutcome{Boys: 2, Girls: 2}, family)
	})

	t.Run("StopsAtThirdBoy", func(t *testing.T) {
		family := SimulateFamily(script(t, "BBGB"), NBoys(3), Limit(10))
		assert.Equal(t, FamilyOutcome{Boys: 3, Girls: 1}, family)
	})

	t.Run("CapReached", func(t *testing.T) {
		family := SimulateFamily(script(t, "GBG"), NBoys(2), Limit(3))
		assert.Equal(t, FamilyOutcome{Boys: 1, Girls: 2}, family)
	})
}

func TestSimulateFamily_FixedCount(t *testing.T) {
	t.Run("IgnoresSex", func(t *testing.T) {
		family := SimulateFamily(script(t, "BBB"), Fixed(3), Limit(3))
		assert.Equal(t, FamilyOutcome{Boys: 3}, family)
	})

	t.Run("UnlimitedCap", func(t *testing.T) {
		family := SimulateFamily(script(t, "GBGBG"), Fixed(5), Unlimited)
		assert.Equal(t, FamilyOutcome{Boys: 2, Girls: 3}, family)
	})

	t.Run("ClampedToCap", func(t *testing.T) {
		family := SimulateFamily(script(t, "GB"), Fixed(4), Limit(2))
		assert.Equal(t, 2, family.Size())
	})
}

func TestSimulateFamily_ZeroCap(t *testing.T) {
	for _, policy := range []Policy{FirstBoy(), NBoys(2), Fixed(3)} {
		t.Run(policy.String(), func(t *testing.T) {
			src := script(t, "")
			assert.Equal(t, FamilyOutcome{}, SimulateFamily(src, policy, Limit(0)))
			assert.Equal(t, 0, src.drawn())
		})
	}
}

func TestSimulateFamily_Properties(t *testing.T) {
	gen := NewGenerator(42, 0)

	t.Run("FixedCountExact", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			assert.Equal(t, 4, SimulateFamily(gen, Fixed(4), Limit(6)).Size())
		}
	})

	t.Run("FirstBoyHasOneBoy", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			assert.Equal(t, 1, SimulateFamily(gen, FirstBoy(), Unlimited).Boys)
		}
	})

	t.Run("NBoysHasNBoys", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			assert.Equal(t, 3, SimulateFamily(gen, NBoys(3), Unlimited).Boys)
		}
	})

	t.Run("CapNeverExceeded", func(t *testing.T) {
		for _, policy := range []Policy{FirstBoy(), NBoys(2), Fixed(2)} {
			for i := 0; i < 1000; i++ {
				family := SimulateFamily(gen, policy, Limit(2))
				assert.LessOrEqual(t, family.Size(), 2)
			}
		}
	})
}

package llm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveWeightDecay(t *testing.T) {
	assert.Equal(t, 30, EffectiveWeight(30, "animals", nil))
	assert.Equal(t, 20, EffectiveWeight(30, "animals", []string{"animals"}))
	assert.Equal(t, 10, EffectiveWeight(30, "animals", []string{"animals", "animals"}))
}

func TestEffectiveWeightNeverBelowFloor(t *testing.T) {
	recent := []string{"animals", "animals", "animals", "animals", "animals", "animals"}
	assert.Equal(t, 5, EffectiveWeight(30, "animals", recent))
	assert.Equal(t, 5, EffectiveWeight(10, "animals", []string{"animals"}))
}

func TestEffectiveWeightIgnoresOtherCategories(t *testing.T) {
	assert.Equal(t, 30, EffectiveWeight(30, "animals", []string{"space", "fantasy"}))
}

func TestPickThemeReturnsThemeFromCategory(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		cat, theme := PickTheme("kids", nil, rng)
		require.NotEmpty(t, cat.Name)
		require.NotEmpty(t, theme)
		assert.Contains(t, cat.Themes, theme)
	}
}

func TestPickThemeUnknownAgeGroup(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cat, theme := PickTheme("grownups", nil, rng)
	assert.Empty(t, cat.Name)
	assert.Empty(t, theme)
}

func TestPickThemeRepeatsAreLessLikely(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	recent := []string{"animals", "animals", "animals"}

	base, decayed := 0, 0
	const rounds = 2000
	for i := 0; i < rounds; i++ {
		if cat, _ := PickTheme("kids", nil, rng); cat.Name == "animals" {
			base++
		}
		if cat, _ := PickTheme("kids", recent, rng); cat.Name == "animals" {
			decayed++
		}
	}
	assert.Less(t, decayed, base)
}

package llm

import "math/rand"

const (
	repeatPenalty = 10
	weightFloor   = 5
)

// EffectiveWeight applies the soft anti-repeat decay: each appearance of the
// category in the recent history costs 10 weight, floored at 5 so no
// category ever fully disappears.
func EffectiveWeight(base int, name string, recent []string) int {
	w := base
	for _, r := range recent {
		if r == name {
			w -= repeatPenalty
		}
	}
	if w < weightFloor {
		w = weightFloor
	}
	return w
}

// PickTheme selects a category by decayed weight, then a theme uniformly
// within it. Returns zero values for an unknown age group.
func PickTheme(ageGroup string, recent []string, rng *rand.Rand) (ThemeCategory, string) {
	cats := themeTables[ageGroup]
	if len(cats) == 0 {
		return ThemeCategory{}, ""
	}

	total := 0
	weights := make([]int, len(cats))
	for i, c := range cats {
		weights[i] = EffectiveWeight(c.Weight, c.Name, recent)
		total += weights[i]
	}

	n := rng.Intn(total)
	idx := 0
	for i, w := range weights {
		if n < w {
			idx = i
			break
		}
		n -= w
	}

	cat := cats[idx]
	theme := cat.Themes[rng.Intn(len(cat.Themes))]
	return cat, theme
}

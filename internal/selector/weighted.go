package selector

import (
	"math"
	"math/rand"

	"github.com/studypulse/studypulse/internal/catalog"
)

// DefaultCategoryWeights is the soft selection bias per category. Weights
// shape the draw, they never filter: every weight is positive, so every
// catalog entry stays reachable.
var DefaultCategoryWeights = map[catalog.Category]float64{
	catalog.CategoryImprovement: 1.3,
	catalog.CategoryPerformance: 1.2,
	catalog.CategoryEngagement:  1.1,
	catalog.CategoryTiming:      1.0,
	catalog.CategoryVariety:     1.0,
	catalog.CategoryThreshold:   1.0,
	catalog.CategoryStreak:      0.8,
}

// weightedPick draws one definition from the pool via category-weighted
// random selection: each entry is duplicated ceil(weight) times in a
// multiset, then one element is picked uniformly.
func weightedPick(pool []catalog.Definition, weights map[catalog.Category]float64, rng *rand.Rand) catalog.Definition {
	multiset := make([]catalog.Definition, 0, len(pool)*2)
	for _, def := range pool {
		w, ok := weights[def.Category]
		if !ok || w <= 0 {
			w = 1
		}
		copies := int(math.Ceil(w))
		for i := 0; i < copies; i++ {
			multiset = append(multiset, def)
		}
	}
	return multiset[rng.Intn(len(multiset))]
}

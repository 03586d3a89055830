package selector

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studypulse/studypulse/internal/catalog"
)

func TestWeightedPickDeterministicForSeed(t *testing.T) {
	pool := catalog.Default().ByTier(catalog.TierMedium)

	first := weightedPick(pool, DefaultCategoryWeights, rand.New(rand.NewSource(42)))
	second := weightedPick(pool, DefaultCategoryWeights, rand.New(rand.NewSource(42)))

	assert.Equal(t, first.Title, second.Title)
}

// Every pool entry must remain reachable: weights bias, they never exclude.
func TestWeightedPickReachesEveryEntry(t *testing.T) {
	pool := catalog.Default().ByTier(catalog.TierEasy)
	rng := rand.New(rand.NewSource(7))

	seen := map[string]int{}
	for i := 0; i < 5000; i++ {
		seen[weightedPick(pool, DefaultCategoryWeights, rng).Title]++
	}

	for _, def := range pool {
		assert.Greater(t, seen[def.Title], 0, def.Title)
	}
}

func TestWeightedPickDefaultsMissingWeightsToOne(t *testing.T) {
	pool := []catalog.Definition{
		{Title: "A", Tier: catalog.TierEasy, Category: catalog.CategoryPerformance, Points: 10},
		{Title: "B", Tier: catalog.TierEasy, Category: catalog.CategoryStreak, Points: 10},
	}
	rng := rand.New(rand.NewSource(1))

	seen := map[string]int{}
	for i := 0; i < 2000; i++ {
		seen[weightedPick(pool, map[catalog.Category]float64{}, rng).Title]++
	}
	assert.Greater(t, seen["A"], 0)
	assert.Greater(t, seen["B"], 0)
}

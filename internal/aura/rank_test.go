package aura

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankInfinityTierFirstAndStable(t *testing.T) {
	projects := []Project{
		{Name: "funded-strong", Category: CategoryApplication, AmountRaised: 100, AnnualizedRevenue: 500},
		{Name: "boot-a", Category: CategoryDApp, AnnualizedRevenue: 1},
		{Name: "funded-weak", Category: CategoryApplication, AmountRaised: 1000, AnnualizedRevenue: 1},
		{Name: "boot-b", Category: CategoryStablecoins, AnnualizedRevenue: 9999},
	}

	scored := Rank(projects)
	require.Len(t, scored, 4)

	// Both bootstrapped-and-profitable entries precede every finite score
	// and keep their input order relative to each other.
	assert.Equal(t, "boot-a", scored[0].Name)
	assert.Equal(t, "boot-b", scored[1].Name)
	assert.True(t, scored[0].Bootstrapped())
	assert.True(t, scored[1].Bootstrapped())

	assert.Equal(t, "funded-strong", scored[2].Name)
	assert.Equal(t, "funded-weak", scored[3].Name)

	for i, s := range scored {
		assert.Equal(t, i+1, s.Rank)
	}
}

func TestRankDescendingFiniteScores(t *testing.T) {
	projects := []Project{
		{Name: "low", Category: CategoryApplication, AmountRaised: 1000, AnnualizedRevenue: 1},
		{Name: "high", Category: CategoryApplication, AmountRaised: 1000, AnnualizedRevenue: 900},
		{Name: "mid", Category: CategoryApplication, AmountRaised: 1000, AnnualizedRevenue: 100},
	}
	scored := Rank(projects)
	require.Len(t, scored, 3)
	assert.Equal(t, []string{"high", "mid", "low"}, []string{scored[0].Name, scored[1].Name, scored[2].Name})
	assert.True(t, scored[0].AuraScore > scored[1].AuraScore)
	assert.True(t, scored[1].AuraScore > scored[2].AuraScore)
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	projects := []Project{
		{Name: "first", Category: CategoryApplication, AmountRaised: 100, AnnualizedRevenue: 10},
		{Name: "second", Category: CategoryApplication, AmountRaised: 100, AnnualizedRevenue: 10},
	}
	scored := Rank(projects)
	assert.Equal(t, "first", scored[0].Name)
	assert.Equal(t, "second", scored[1].Name)
	assert.Equal(t, scored[0].AuraScore, scored[1].AuraScore)
}

func TestRanksLookupByName(t *testing.T) {
	projects := []Project{
		{Name: "zeta", Category: CategoryApplication, AmountRaised: 1000, AnnualizedRevenue: 10},
		{Name: "alpha", Category: CategoryDApp, AnnualizedRevenue: 5},
	}
	ranks := Ranks(projects)
	assert.Equal(t, 1, ranks["alpha"])
	assert.Equal(t, 2, ranks["zeta"])
}

func TestRankEmptyInput(t *testing.T) {
	assert.Empty(t, Rank(nil))
	assert.Empty(t, Ranks(nil))
}

func TestScoredProjectBootstrappedFlag(t *testing.T) {
	s := ScoredProject{AuraScore: math.Inf(1)}
	assert.True(t, s.Bootstrapped())
	s.AuraScore = 5000
	assert.False(t, s.Bootstrapped())
}

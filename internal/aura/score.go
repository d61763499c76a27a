// Package aura computes the aura score: a capital-efficiency ranking metric
// for crypto projects, log-scaled from the ratio of weighted annualized
// revenue to capital raised.
package aura

import "math"

// Category classifies a project for scoring purposes. Infrastructure
// categories blend a discounted share of ecosystem app fees into the
// revenue figure; app-layer categories use native revenue only.
type Category string

const (
	CategoryL1          Category = "L1"
	CategoryL2          Category = "L2"
	CategoryL3          Category = "L3"
	CategoryApplication Category = "Application"
	CategoryDApp        Category = "dApp"
	CategoryStablecoins Category = "Stablecoins"
)

// appFeeWeight is the discount applied to ecosystem app fees when blending
// them into an infrastructure project's weighted revenue.
const appFeeWeight = 0.7

// Infrastructure reports whether the category earns credit for ecosystem
// app fees on top of native revenue.
func (c Category) Infrastructure() bool {
	switch c {
	case CategoryL1, CategoryL2, CategoryL3:
		return true
	}
	return false
}

// Project holds the financial attributes consumed by the scorer. Field
// names mirror the upstream comparison payload.
type Project struct {
	Name              string   `json:"name"`
	Category          Category `json:"category"`
	AmountRaised      float64  `json:"amountRaised"`
	AnnualizedRevenue float64  `json:"annualizedRevenue"`
	AnnualizedAppFees float64  `json:"annualizedAppFees"`
}

// WeightedRevenue returns the revenue figure used for scoring: native
// revenue for app-layer projects, native revenue plus 70% of app fees for
// infrastructure.
func WeightedRevenue(p Project) float64 {
	if p.Category.Infrastructure() {
		return p.AnnualizedRevenue + appFeeWeight*p.AnnualizedAppFees
	}
	return p.AnnualizedRevenue
}

// Score computes the aura score for a project. Bootstrapped projects
// (amountRaised == 0) with positive weighted revenue score positive
// infinity and rank ahead of every funded project; bootstrapped projects
// with no revenue score exactly 0. Funded projects are scored from the
// revenue/raised ratio through a piecewise log mapping and rounded to the
// nearest integer.
func Score(p Project) float64 {
	weighted := WeightedRevenue(p)
	if p.AmountRaised == 0 {
		if weighted > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return math.Round(scoreRatio(weighted / p.AmountRaised))
}

// scoreRatio maps a revenue/raised ratio to a raw score. Each band covers
// one decade of ratio; the log base and scale change per band. The
// zero-ratio constant is the global floor: the bottom band's log tends to
// negative infinity, so it is clamped to keep any positive ratio from
// scoring below zero revenue.
func scoreRatio(ratio float64) float64 {
	switch {
	case ratio <= 0:
		return -1000
	case ratio < 0.001:
		return math.Max(math.Log10(ratio*1000)*200-800, -1000)
	case ratio < 0.01:
		return math.Log10(ratio*100)*150 - 200
	case ratio < 0.1:
		return math.Log10(ratio*10)*200 + 200
	case ratio < 1:
		return math.Log10(ratio)*300 + 700
	case ratio < 10:
		return math.Log2(ratio)*400 + 700
	case ratio < 100:
		return math.Log2(ratio/10)*600 + 2000
	default:
		return math.Log2(ratio/100)*1000 + 5000
	}
}

// Band names the qualitative tier a score falls in.
func Band(score float64) string {
	switch {
	case math.IsInf(score, 1):
		return "ascended"
	case score >= 5000:
		return "mythic"
	case score >= 2000:
		return "elite"
	case score >= 700:
		return "strong"
	case score >= 400:
		return "efficient"
	case score >= 0:
		return "emerging"
	case score >= -200:
		return "diluted"
	case score >= -800:
		return "underwater"
	default:
		return "cursed"
	}
}

package aura

import (
	"math"
	"sort"
)

// ScoredProject is a project annotated with its aura score and 1-indexed
// rank. Recomputed whole on every load; never persisted.
type ScoredProject struct {
	Project
	AuraScore float64
	Rank      int
}

// Bootstrapped reports whether the project carries the
// bootstrapped-and-profitable infinity sentinel.
func (s ScoredProject) Bootstrapped() bool {
	return math.IsInf(s.AuraScore, 1)
}

// Rank scores all projects and sorts them descending by score. Infinity
// entries tie at the top and keep their input order; finite ties also keep
// input order. Rank is the 1-indexed position in the sorted sequence.
func Rank(projects []Project) []ScoredProject {
	scored := make([]ScoredProject, 0, len(projects))
	for _, p := range projects {
		scored = append(scored, ScoredProject{Project: p, AuraScore: Score(p)})
	}
	// Inf > Inf is false, so the stable sort leaves the infinity tier in
	// input order without a special case.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].AuraScore > scored[j].AuraScore
	})
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

// Ranks returns the display-name -> aura rank lookup used to join aura
// standings onto the builder leaderboard.
func Ranks(projects []Project) map[string]int {
	scored := Rank(projects)
	ranks := make(map[string]int, len(scored))
	for _, s := range scored {
		ranks[s.Name] = s.Rank
	}
	return ranks
}

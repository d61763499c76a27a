// Package comparison shapes the aura-ranked project set into the two
// dashboard views: the podium/tier layout and the detailed table. Both
// read the same sorted sequence; tiers are display partitions only and
// never feed back into scoring.
package comparison

import (
	"fmt"
	"strings"

	"github.com/GoPolymarket/aura-dashboard/internal/aura"
)

// View selects a comparison rendering.
type View string

const (
	ViewAura     View = "aura"
	ViewDetailed View = "detailed"
)

// ParseView validates a view query value; empty input defaults to the
// aura view.
func ParseView(raw string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return ViewAura, nil
	case ViewAura:
		return ViewAura, nil
	case ViewDetailed:
		return ViewDetailed, nil
	}
	return "", fmt.Errorf("comparison: unknown view %q (supported: aura|detailed)", raw)
}

// Entry is one ranked project as rendered by either view. AuraScore is the
// finite score, or null for the bootstrapped infinity sentinel (JSON has
// no infinity); Bootstrapped and the "ascended" band mark that tier.
type Entry struct {
	Rank         int         `json:"rank"`
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	AuraScore    interface{} `json:"auraScore"`
	Bootstrapped bool        `json:"bootstrapped"`
	Band         string      `json:"band"`
}

func entryFor(s aura.ScoredProject) Entry {
	e := Entry{
		Rank:         s.Rank,
		Name:         s.Name,
		Category:     string(s.Category),
		Bootstrapped: s.Bootstrapped(),
		Band:         aura.Band(s.AuraScore),
	}
	if !s.Bootstrapped() {
		e.AuraScore = s.AuraScore
	}
	return e
}

// AuraView is the podium layout: top 3 on the podium, then the remainder
// partitioned into top, mid and cursed tiers.
type AuraView struct {
	Podium     []Entry `json:"podium"`
	TopTier    []Entry `json:"topTier"`
	MidTier    []Entry `json:"midTier"`
	CursedTier []Entry `json:"cursedTier"`
}

// tierSizes splits the post-podium remainder: top and cursed tiers each
// take floor(20%), minimum 1 while entries remain; mid gets the rest.
func tierSizes(remainder int) (top, cursed int) {
	if remainder == 0 {
		return 0, 0
	}
	top = remainder / 5
	if top < 1 {
		top = 1
	}
	cursed = remainder / 5
	if cursed < 1 {
		cursed = 1
	}
	if top > remainder {
		top = remainder
	}
	if cursed > remainder-top {
		cursed = remainder - top
	}
	return top, cursed
}

// BuildAuraView partitions the ranked sequence into podium and tiers.
func BuildAuraView(scored []aura.ScoredProject) AuraView {
	entries := make([]Entry, len(scored))
	for i, s := range scored {
		entries[i] = entryFor(s)
	}

	view := AuraView{
		Podium:     []Entry{},
		TopTier:    []Entry{},
		MidTier:    []Entry{},
		CursedTier: []Entry{},
	}
	podium := 3
	if podium > len(entries) {
		podium = len(entries)
	}
	view.Podium = entries[:podium]

	rest := entries[podium:]
	top, cursed := tierSizes(len(rest))
	view.TopTier = rest[:top]
	view.MidTier = rest[top : len(rest)-cursed]
	view.CursedTier = rest[len(rest)-cursed:]
	return view
}

// DetailRow is one row of the detailed comparison table, annotated for
// tooltips with the weighting applied to the project's revenue.
type DetailRow struct {
	Entry
	AmountRaised      float64     `json:"amountRaised"`
	AnnualizedRevenue float64     `json:"annualizedRevenue"`
	AnnualizedAppFees float64     `json:"annualizedAppFees"`
	WeightedRevenue   float64     `json:"weightedRevenue"`
	Ratio             interface{} `json:"ratio"`
	Note              string      `json:"note"`
}

func noteFor(p aura.Project) string {
	switch {
	case p.AmountRaised == 0:
		return "bootstrapped: no external capital raised"
	case p.Category.Infrastructure():
		return "weighted revenue blends native revenue with 70% of ecosystem app fees"
	default:
		return "app-layer revenue only; ecosystem fees excluded"
	}
}

// BuildDetailRows renders the detailed table in rank order.
func BuildDetailRows(scored []aura.ScoredProject) []DetailRow {
	rows := make([]DetailRow, len(scored))
	for i, s := range scored {
		weighted := aura.WeightedRevenue(s.Project)
		row := DetailRow{
			Entry:             entryFor(s),
			AmountRaised:      s.AmountRaised,
			AnnualizedRevenue: s.AnnualizedRevenue,
			AnnualizedAppFees: s.AnnualizedAppFees,
			WeightedRevenue:   weighted,
			Note:              noteFor(s.Project),
		}
		if s.AmountRaised > 0 {
			row.Ratio = weighted / s.AmountRaised
		}
		rows[i] = row
	}
	return rows
}

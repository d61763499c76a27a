// Package digest renders snapshot summaries: an HTML digest for the daily
// Telegram message and a markdown report for the dashboard's export surface.
package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/GoPolymarket/aura-dashboard/internal/aura"
	"github.com/GoPolymarket/aura-dashboard/internal/format"
	"github.com/GoPolymarket/aura-dashboard/internal/leaderboard"
	"github.com/GoPolymarket/aura-dashboard/internal/tracker"
)

// topBuilders caps the builder section of rendered digests.
const topBuilders = 5

// BuilderLine is one rendered builder row in a digest.
type BuilderLine struct {
	Rank    int
	Name    string
	Revenue string
	Volume  string
}

// PodiumLine is one rendered aura podium row.
type PodiumLine struct {
	Rank     int
	Name     string
	Category string
	Score    string
	Band     string
}

// Data is a fully formatted digest payload ready for either renderer.
type Data struct {
	TimeRange      string
	LoadedAt       time.Time
	TotalRevenue   string
	TotalVolume    string
	ActiveBuilders string
	GrowthRate     string
	Builders       []BuilderLine
	Podium         []PodiumLine
	ProjectCount   int
}

// Build formats a snapshot into digest data using the given locale printer.
func Build(snap *tracker.Snapshot, p *format.Printer) Data {
	d := Data{
		TimeRange:      snap.TimeRange,
		LoadedAt:       snap.LoadedAt,
		TotalRevenue:   p.CompactCurrency(snap.Revenue.TotalRevenue),
		TotalVolume:    p.CompactCurrency(snap.Revenue.TotalVolume),
		ActiveBuilders: p.Count(snap.Revenue.ActiveBuilders),
		GrowthRate:     p.Percent(snap.Revenue.GrowthRate),
		ProjectCount:   len(snap.Projects),
	}

	rows := leaderboard.BuildRows(snap.Revenue.Builders, snap.AuraRanks)
	if len(rows) > topBuilders {
		rows = rows[:topBuilders]
	}
	for _, r := range rows {
		d.Builders = append(d.Builders, BuilderLine{
			Rank:    r.DisplayRank,
			Name:    r.Name,
			Revenue: p.Currency(r.Revenue),
			Volume:  p.CompactCurrency(r.Volume),
		})
	}

	for _, sp := range snap.Projects {
		if sp.Rank > 3 {
			break
		}
		d.Podium = append(d.Podium, PodiumLine{
			Rank:     sp.Rank,
			Name:     sp.Name,
			Category: string(sp.Category),
			Score:    scoreLabel(sp),
			Band:     aura.Band(sp.AuraScore),
		})
	}
	return d
}

func scoreLabel(sp aura.ScoredProject) string {
	if sp.Bootstrapped() {
		return "∞"
	}
	return fmt.Sprintf("%.0f", sp.AuraScore)
}

// RenderHTML renders the digest in Telegram HTML parse mode.
func RenderHTML(d Data) string {
	var b strings.Builder
	b.WriteString("<b>Builder Revenue Digest</b>\n")
	b.WriteString(fmt.Sprintf("Window: <code>%s</code>\n", d.TimeRange))
	b.WriteString(fmt.Sprintf("Total Revenue: %s (%s)\n", d.TotalRevenue, d.GrowthRate))
	b.WriteString(fmt.Sprintf("Total Volume: %s\nActive Builders: %s\n", d.TotalVolume, d.ActiveBuilders))
	if len(d.Builders) > 0 {
		b.WriteString("\n<b>Top Builders</b>\n")
		for _, l := range d.Builders {
			b.WriteString(fmt.Sprintf("%d. %s — %s\n", l.Rank, l.Name, l.Revenue))
		}
	}
	if len(d.Podium) > 0 {
		b.WriteString("\n<b>Aura Podium</b>\n")
		for _, l := range d.Podium {
			b.WriteString(fmt.Sprintf("%d. %s (%s) — %s %s\n", l.Rank, l.Name, l.Category, l.Score, l.Band))
		}
	}
	return strings.TrimSpace(b.String())
}

// RenderMarkdown renders the digest as the dashboard's markdown report.
func RenderMarkdown(d Data) string {
	var b strings.Builder
	b.WriteString("# Builder Revenue Report\n\n")
	b.WriteString(fmt.Sprintf("- Window: `%s`\n", d.TimeRange))
	if !d.LoadedAt.IsZero() {
		b.WriteString(fmt.Sprintf("- Loaded: %s\n", d.LoadedAt.UTC().Format(time.RFC3339)))
	}
	b.WriteString(fmt.Sprintf("- Total Revenue: %s (%s)\n", d.TotalRevenue, d.GrowthRate))
	b.WriteString(fmt.Sprintf("- Total Volume: %s\n", d.TotalVolume))
	b.WriteString(fmt.Sprintf("- Active Builders: %s\n", d.ActiveBuilders))
	b.WriteString(fmt.Sprintf("- Scored Projects: %d\n", d.ProjectCount))

	if len(d.Builders) > 0 {
		b.WriteString("\n## Top Builders\n\n")
		b.WriteString("| Rank | Builder | Revenue | Volume |\n")
		b.WriteString("|------|---------|---------|--------|\n")
		for _, l := range d.Builders {
			b.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", l.Rank, l.Name, l.Revenue, l.Volume))
		}
	}
	if len(d.Podium) > 0 {
		b.WriteString("\n## Aura Podium\n\n")
		b.WriteString("| Rank | Project | Category | Score | Band |\n")
		b.WriteString("|------|---------|----------|-------|------|\n")
		for _, l := range d.Podium {
			b.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n", l.Rank, l.Name, l.Category, l.Score, l.Band))
		}
	}
	return b.String()
}

package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/GoPolymarket/aura-dashboard/internal/aura"
	"github.com/GoPolymarket/aura-dashboard/internal/format"
	"github.com/GoPolymarket/aura-dashboard/internal/tracker"
	"github.com/GoPolymarket/aura-dashboard/internal/upstream"
	"golang.org/x/text/language"
)

func testSnapshot() *tracker.Snapshot {
	projects := []aura.Project{
		{Name: "hyper", Category: aura.CategoryL1, AmountRaised: 1000, AnnualizedRevenue: 100000},
		{Name: "boot", Category: aura.CategoryDApp, AnnualizedRevenue: 500},
		{Name: "mid", Category: aura.CategoryApplication, AmountRaised: 1000, AnnualizedRevenue: 100},
		{Name: "low", Category: aura.CategoryApplication, AmountRaised: 1000, AnnualizedRevenue: 1},
	}
	return &tracker.Snapshot{
		TimeRange: "7d",
		Revenue: upstream.RevenueSnapshot{
			Builders: []upstream.Builder{
				{Code: "axiom", Name: "Axiom", TotalRevenue: 1234567.89, TotalVolume: 45000000},
				{Code: "moon", Name: "Moonshot", TotalRevenue: 234567.12, TotalVolume: 9000000},
			},
			TotalRevenue:   1469135.01,
			ActiveBuilders: 2,
			TotalVolume:    54000000,
			GrowthRate:     0.123,
		},
		Projects:  aura.Rank(projects),
		AuraRanks: aura.Ranks(projects),
		LoadedAt:  time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildDigestData(t *testing.T) {
	p := format.NewPrinter(language.English)
	d := Build(testSnapshot(), p)

	if d.TimeRange != "7d" {
		t.Errorf("expected 7d window, got %s", d.TimeRange)
	}
	if d.TotalRevenue != "$1.5M" {
		t.Errorf("expected compact total revenue $1.5M, got %s", d.TotalRevenue)
	}
	if d.GrowthRate != "+12.3%" {
		t.Errorf("expected +12.3%% growth, got %s", d.GrowthRate)
	}
	if len(d.Builders) != 2 {
		t.Fatalf("expected 2 builder lines, got %d", len(d.Builders))
	}
	if d.Builders[0].Name != "Axiom" || d.Builders[0].Rank != 1 {
		t.Errorf("unexpected first builder line: %+v", d.Builders[0])
	}
	if len(d.Podium) != 3 {
		t.Fatalf("expected 3 podium lines, got %d", len(d.Podium))
	}
	if d.Podium[0].Name != "boot" || d.Podium[0].Score != "∞" || d.Podium[0].Band != "ascended" {
		t.Errorf("bootstrapped project should lead the podium: %+v", d.Podium[0])
	}
	if d.ProjectCount != 4 {
		t.Errorf("expected 4 scored projects, got %d", d.ProjectCount)
	}
}

func TestBuildCapsTopBuilders(t *testing.T) {
	snap := testSnapshot()
	for i := 0; i < 10; i++ {
		snap.Revenue.Builders = append(snap.Revenue.Builders, upstream.Builder{
			Name: "filler", TotalRevenue: float64(i),
		})
	}
	d := Build(snap, format.NewPrinter(language.English))
	if len(d.Builders) != topBuilders {
		t.Errorf("expected builder section capped at %d, got %d", topBuilders, len(d.Builders))
	}
}

func TestRenderHTML(t *testing.T) {
	d := Build(testSnapshot(), format.NewPrinter(language.English))
	out := RenderHTML(d)

	for _, want := range []string{
		"<b>Builder Revenue Digest</b>",
		"Window: <code>7d</code>",
		"$1.5M",
		"Axiom",
		"<b>Aura Podium</b>",
		"boot",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html digest missing %q:\n%s", want, out)
		}
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("html digest should be trimmed")
	}
}

func TestRenderMarkdown(t *testing.T) {
	d := Build(testSnapshot(), format.NewPrinter(language.English))
	out := RenderMarkdown(d)

	for _, want := range []string{
		"# Builder Revenue Report",
		"- Window: `7d`",
		"- Loaded: 2026-08-23T12:00:00Z",
		"## Top Builders",
		"| 1 | Axiom |",
		"## Aura Podium",
		"| 1 | boot |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown report missing %q:\n%s", want, out)
		}
	}
}

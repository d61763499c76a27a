package upstream

import (
	"fmt"
	"strings"
	"time"

	"github.com/GoPolymarket/aura-dashboard/internal/aura"
)

// TimeRanges lists the revenue aggregation windows the upstream accepts.
var TimeRanges = []string{"24h", "7d", "30d", "90d", "all"}

// DefaultTimeRange is used when no window is requested.
const DefaultTimeRange = "7d"

// NormalizeTimeRange lowercases and validates a revenue window. An empty
// input maps to DefaultTimeRange; anything outside the accepted set is an
// error.
func NormalizeTimeRange(raw string) (string, error) {
	tr := strings.ToLower(strings.TrimSpace(raw))
	if tr == "" {
		return DefaultTimeRange, nil
	}
	for _, known := range TimeRanges {
		if tr == known {
			return tr, nil
		}
	}
	return "", fmt.Errorf("upstream: unknown time range %q (supported: %s)", raw, strings.Join(TimeRanges, "|"))
}

// Builder is one revenue-sharing integration partner row from the revenue
// endpoint. Only the fields the dashboard consumes are mapped.
type Builder struct {
	Code         string  `json:"builderCode"`
	Name         string  `json:"builderName"`
	TotalRevenue float64 `json:"totalRevenue"`
	TotalVolume  float64 `json:"totalVolume"`
	TotalTrades  int     `json:"totalTrades"`
}

// RevenueSnapshot is the payload of GET /api/builders/revenue.
type RevenueSnapshot struct {
	Builders       []Builder `json:"builders"`
	TotalRevenue   float64   `json:"totalRevenue"`
	ActiveBuilders int       `json:"activeBuilders"`
	TotalVolume    float64   `json:"totalVolume"`
	GrowthRate     float64   `json:"growthRate"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// ComparisonSnapshot is the payload of GET /api/comparison.
type ComparisonSnapshot struct {
	Projects    []aura.Project `json:"projects"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

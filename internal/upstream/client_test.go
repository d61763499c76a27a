package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GoPolymarket/aura-dashboard/internal/aura"
)

func init() {
	// Keep backoff out of test runtime.
	retryBaseDelay = time.Millisecond
}

func TestNormalizeTimeRange(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"24h", "24h", false},
		{"7d", "7d", false},
		{"30d", "30d", false},
		{"90d", "90d", false},
		{"all", "all", false},
		{" ALL ", "all", false},
		{"", "7d", false},
		{"1y", "", true},
		{"7days", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizeTimeRange(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeTimeRange(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeTimeRange(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeTimeRange(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildersRevenue(t *testing.T) {
	var gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/builders/revenue" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotRange = r.URL.Query().Get("timeRange")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"builders": [
				{"builderCode": "bc-1", "builderName": "Axiom", "totalRevenue": 1200.5, "totalVolume": 90000, "totalTrades": 420}
			],
			"totalRevenue": 1200.5,
			"activeBuilders": 1,
			"totalVolume": 90000,
			"growthRate": 0.12,
			"lastUpdated": "2026-08-20T12:00:00Z"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	snap, err := c.BuildersRevenue(context.Background(), "30d")
	if err != nil {
		t.Fatalf("BuildersRevenue: %v", err)
	}
	if gotRange != "30d" {
		t.Errorf("expected timeRange=30d sent upstream, got %q", gotRange)
	}
	if len(snap.Builders) != 1 || snap.Builders[0].Name != "Axiom" {
		t.Fatalf("unexpected builders: %+v", snap.Builders)
	}
	if snap.TotalRevenue != 1200.5 || snap.ActiveBuilders != 1 {
		t.Errorf("unexpected totals: %+v", snap)
	}
}

func TestBuildersRevenueDefaultsTimeRange(t *testing.T) {
	var gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRange = r.URL.Query().Get("timeRange")
		w.Write([]byte(`{"builders": [{"builderCode": "x", "builderName": "X", "totalRevenue": 1}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.BuildersRevenue(context.Background(), ""); err != nil {
		t.Fatalf("BuildersRevenue: %v", err)
	}
	if gotRange != DefaultTimeRange {
		t.Errorf("expected default time range %q, got %q", DefaultTimeRange, gotRange)
	}
}

func TestBuildersRevenueRejectsUnknownRange(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", time.Second)
	if _, err := c.BuildersRevenue(context.Background(), "1y"); err == nil {
		t.Fatal("expected error for unknown time range")
	}
}

func TestBuildersRevenueEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"builders": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.BuildersRevenue(context.Background(), "7d")
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestComparison(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/comparison" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"projects": [
				{"name": "Hyperliquid", "category": "L1", "amountRaised": 0, "annualizedRevenue": 800000000},
				{"name": "Phantom", "category": "Application", "amountRaised": 268000000, "annualizedRevenue": 60000000}
			],
			"lastUpdated": "2026-08-20T12:00:00Z"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	snap, err := c.Comparison(context.Background())
	if err != nil {
		t.Fatalf("Comparison: %v", err)
	}
	if len(snap.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(snap.Projects))
	}
	if snap.Projects[0].Category != aura.CategoryL1 {
		t.Errorf("expected L1, got %s", snap.Projects[0].Category)
	}
}

func TestComparisonEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"projects": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.Comparison(context.Background()); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestGetJSONAcceptsNonOK2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNonAuthoritativeInfo)
		w.Write([]byte(`{"projects": [{"name": "p", "category": "dApp"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	snap, err := c.Comparison(context.Background())
	if err != nil {
		t.Fatalf("expected 203 to count as success, got %v", err)
	}
	if len(snap.Projects) != 1 {
		t.Fatalf("expected decoded payload, got %+v", snap)
	}
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"projects": [{"name": "p", "category": "dApp"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.Comparison(context.Background()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.Comparison(context.Background()); err == nil {
		t.Fatal("expected error on 404")
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

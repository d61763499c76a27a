// Package tracker maintains the dashboard's data snapshot: builder revenue
// and the aura-scored comparison set, loaded together from the upstream and
// recomputed whole on every refresh.
package tracker

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GoPolymarket/aura-dashboard/internal/aura"
	"github.com/GoPolymarket/aura-dashboard/internal/upstream"
)

// ErrStaleLoad is returned when a refresh completes after a newer one was
// issued; its result is discarded so stale data never overwrites fresher
// state.
var ErrStaleLoad = errors.New("tracker: stale load discarded")

// Fetcher is the upstream surface the tracker depends on.
type Fetcher interface {
	BuildersRevenue(ctx context.Context, timeRange string) (upstream.RevenueSnapshot, error)
	Comparison(ctx context.Context) (upstream.ComparisonSnapshot, error)
}

// Alerter receives refresh failure/recovery events (nil disables alerts).
type Alerter interface {
	NotifyRefreshFailure(ctx context.Context, timeRange string, consecutive int, err error) error
	NotifyRefreshRecovered(ctx context.Context, timeRange string) error
}

// Snapshot is one complete, immutable load of dashboard state. Derived
// ranking data lives and dies with the load that produced it.
type Snapshot struct {
	TimeRange string
	Revenue   upstream.RevenueSnapshot
	Projects  []aura.ScoredProject
	AuraRanks map[string]int
	LoadedAt  time.Time
}

// Tracker refreshes and guards the latest good snapshot.
type Tracker struct {
	fetcher Fetcher
	alerts  Alerter

	refreshInterval time.Duration
	staleAfter      time.Duration
	now             func() time.Time

	mu        sync.RWMutex
	token     uint64
	snap      *Snapshot
	timeRange string
	lastErr   error
	failures  int
}

// New creates a Tracker. timeRange is the window used by the periodic
// refresh loop until changed by a successful manual refresh.
func New(fetcher Fetcher, timeRange string, refreshInterval, staleAfter time.Duration) *Tracker {
	if refreshInterval <= 0 {
		refreshInterval = 5 * time.Minute
	}
	if staleAfter <= 0 {
		staleAfter = 30 * time.Minute
	}
	return &Tracker{
		fetcher:         fetcher,
		refreshInterval: refreshInterval,
		staleAfter:      staleAfter,
		now:             time.Now,
		timeRange:       timeRange,
	}
}

// WithAlerter attaches an alert sink for failure/recovery events.
func (t *Tracker) WithAlerter(a Alerter) *Tracker {
	t.alerts = a
	return t
}

// Refresh loads both upstream payloads concurrently and, when both
// succeed, swaps in a freshly computed snapshot. Either failure aborts the
// whole load and leaves the previous snapshot untouched. A load that
// finishes after a newer one was issued is discarded with ErrStaleLoad.
func (t *Tracker) Refresh(ctx context.Context, timeRange string) error {
	tr, err := upstream.NormalizeTimeRange(timeRange)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.token++
	token := t.token
	t.mu.Unlock()

	var (
		revenue    upstream.RevenueSnapshot
		comparison upstream.ComparisonSnapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		revenue, err = t.fetcher.BuildersRevenue(gctx, tr)
		return err
	})
	g.Go(func() error {
		var err error
		comparison, err = t.fetcher.Comparison(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return t.recordFailure(ctx, token, tr, err)
	}

	snap := &Snapshot{
		TimeRange: tr,
		Revenue:   revenue,
		Projects:  aura.Rank(comparison.Projects),
		AuraRanks: aura.Ranks(comparison.Projects),
		LoadedAt:  t.now(),
	}

	t.mu.Lock()
	if token != t.token {
		t.mu.Unlock()
		return ErrStaleLoad
	}
	recovered := t.failures > 0
	t.snap = snap
	t.timeRange = tr
	t.lastErr = nil
	t.failures = 0
	t.mu.Unlock()

	if recovered && t.alerts != nil {
		if err := t.alerts.NotifyRefreshRecovered(ctx, tr); err != nil {
			log.Printf("tracker: recovery alert: %v", err)
		}
	}
	return nil
}

func (t *Tracker) recordFailure(ctx context.Context, token uint64, timeRange string, cause error) error {
	t.mu.Lock()
	if token != t.token {
		t.mu.Unlock()
		return ErrStaleLoad
	}
	t.lastErr = cause
	t.failures++
	failures := t.failures
	t.mu.Unlock()

	if t.alerts != nil {
		if err := t.alerts.NotifyRefreshFailure(ctx, timeRange, failures, cause); err != nil {
			log.Printf("tracker: failure alert: %v", err)
		}
	}
	return cause
}

// Snapshot returns the latest good snapshot, if any. The returned value is
// shared and must not be mutated.
func (t *Tracker) Snapshot() (*Snapshot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snap, t.snap != nil
}

// LastError returns the error from the most recent failed refresh, or nil
// after a successful one.
func (t *Tracker) LastError() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastErr
}

// LastSync returns the load time of the current snapshot (zero when none).
func (t *Tracker) LastSync() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.snap == nil {
		return time.Time{}
	}
	return t.snap.LoadedAt
}

// Stale reports whether no snapshot exists or the current one is older
// than the staleness threshold.
func (t *Tracker) Stale() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.snap == nil {
		return true
	}
	return t.now().Sub(t.snap.LoadedAt) > t.staleAfter
}

// TimeRange returns the window the periodic loop refreshes with.
func (t *Tracker) TimeRange() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.timeRange
}

// Run starts the periodic refresh loop. Blocks until ctx is cancelled.
func (t *Tracker) Run(ctx context.Context) error {
	if err := t.Refresh(ctx, t.TimeRange()); err != nil && !errors.Is(err, ErrStaleLoad) {
		log.Printf("tracker initial refresh: %v", err)
	}

	ticker := time.NewTicker(t.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := t.Refresh(ctx, t.TimeRange()); err != nil && !errors.Is(err, ErrStaleLoad) {
				log.Printf("tracker refresh: %v", err)
			}
		}
	}
}

// Package venue syncs builder volume and standings straight from the
// trading venue's public data API. It is an optional cross-check feed: the
// dashboard renders upstream revenue analytics either way, and uses this
// feed only to surface on-venue attribution freshness alongside them.
package venue

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/GoPolymarket/polymarket-go-sdk/pkg/data"
)

const staleAfter = 30 * time.Minute

// Feed periodically syncs builder volume and leaderboard data from the
// venue data API.
type Feed struct {
	dataClient   data.Client
	syncInterval time.Duration

	mu          sync.RWMutex
	dailyVolume []data.BuilderVolumeEntry
	leaderboard []data.BuilderLeaderboardEntry
	lastSync    time.Time
}

// NewFeed creates a Feed that syncs at the given interval.
func NewFeed(dataClient data.Client, syncInterval time.Duration) *Feed {
	if syncInterval <= 0 {
		syncInterval = 10 * time.Minute
	}
	return &Feed{
		dataClient:   dataClient,
		syncInterval: syncInterval,
	}
}

// Sync fetches current builder volume and leaderboard from the venue.
func (f *Feed) Sync(ctx context.Context) error {
	vol, err := f.dataClient.BuildersVolume(ctx, &data.BuildersVolumeRequest{})
	if err != nil {
		return err
	}
	lb, err := f.dataClient.BuildersLeaderboard(ctx, &data.BuildersLeaderboardRequest{})
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.dailyVolume = vol
	f.leaderboard = lb
	f.lastSync = time.Now()
	f.mu.Unlock()
	return nil
}

// DailyVolume returns the cached per-day builder volume entries.
func (f *Feed) DailyVolume() []data.BuilderVolumeEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dailyVolume
}

// Leaderboard returns the cached venue builder leaderboard.
func (f *Feed) Leaderboard() []data.BuilderLeaderboardEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.leaderboard
}

// LastSync returns the time of the last successful sync.
func (f *Feed) LastSync() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastSync
}

// Status summarizes feed health for the dashboard status surface.
type Status struct {
	Configured       bool        `json:"configured"`
	DailyVolumeCount int         `json:"dailyVolumeCount"`
	LeaderboardCount int         `json:"leaderboardCount"`
	LastSync         interface{} `json:"lastSync"`
	LastSyncAgeS     interface{} `json:"lastSyncAgeS"`
	NeverSynced      bool        `json:"neverSynced"`
	Stale            bool        `json:"stale"`
}

// Status reports the feed's current sync health. Safe on a nil Feed, which
// reports an unconfigured status.
func (f *Feed) Status() Status {
	if f == nil {
		return Status{Configured: false, NeverSynced: true}
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	st := Status{
		Configured:       true,
		DailyVolumeCount: len(f.dailyVolume),
		LeaderboardCount: len(f.leaderboard),
		NeverSynced:      f.lastSync.IsZero(),
	}
	st.Stale = st.NeverSynced
	if !st.NeverSynced {
		age := time.Since(f.lastSync)
		if age < 0 {
			age = 0
		}
		st.LastSync = f.lastSync
		st.LastSyncAgeS = age.Seconds()
		st.Stale = age > staleAfter
	}
	return st
}

// Run starts the periodic sync loop. Blocks until ctx is cancelled.
func (f *Feed) Run(ctx context.Context) error {
	if err := f.Sync(ctx); err != nil {
		log.Printf("venue feed initial sync: %v", err)
	}

	ticker := time.NewTicker(f.syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := f.Sync(ctx); err != nil {
				log.Printf("venue feed sync: %v", err)
			}
		}
	}
}

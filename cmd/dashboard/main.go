package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	polymarket "github.com/GoPolymarket/polymarket-go-sdk"

	"github.com/GoPolymarket/aura-dashboard/internal/api"
	"github.com/GoPolymarket/aura-dashboard/internal/config"
	"github.com/GoPolymarket/aura-dashboard/internal/digest"
	"github.com/GoPolymarket/aura-dashboard/internal/format"
	"github.com/GoPolymarket/aura-dashboard/internal/notify"
	"github.com/GoPolymarket/aura-dashboard/internal/tracker"
	"github.com/GoPolymarket/aura-dashboard/internal/upstream"
	"github.com/GoPolymarket/aura-dashboard/internal/venue"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	timeRange := flag.String("time-range", "", "override revenue window: 24h|7d|30d|90d|all")
	addr := flag.String("addr", "", "override api listen address")
	flag.Parse()

	cfg, err := config.LoadFile(*cfgPath)
	if err != nil {
		log.Printf("warning: config file: %v, using defaults", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()
	if v := strings.ToLower(strings.TrimSpace(*timeRange)); v != "" {
		cfg.DefaultTimeRange = v
	}
	if v := strings.TrimSpace(*addr); v != "" {
		cfg.API.Addr = v
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	window, err := upstream.NormalizeTimeRange(cfg.DefaultTimeRange)
	if err != nil {
		log.Fatalf("invalid time range: %v", err)
	}

	log.Printf(
		"aura-dashboard starting (window=%s refresh=%s upstream=%s locale=%s)",
		window,
		cfg.RefreshInterval,
		cfg.UpstreamBaseURL,
		cfg.Locale,
	)

	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	tr := tracker.New(client, window, cfg.RefreshInterval, cfg.StaleAfter)

	tag := format.ParseTag(cfg.Locale)
	printer := format.NewPrinter(tag)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := notify.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if cfg.Telegram.Enabled && notifier.Enabled() {
		tr.WithAlerter(notifier)
		go runDailyDigest(ctx, tr, notifier, printer)
		log.Println("telegram alerts enabled")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var feed *venue.Feed
	if cfg.Venue.Enabled {
		sdkClient := polymarket.NewClient()
		feed = venue.NewFeed(sdkClient.Data, cfg.Venue.SyncInterval)
		go func() {
			if err := feed.Run(ctx); err != nil && err != context.Canceled {
				log.Printf("venue feed: %v", err)
			}
		}()
		log.Println("venue volume feed enabled")
	}

	var apiServer *api.Server
	if cfg.API.Enabled {
		var venueProvider api.VenueProvider
		if feed != nil {
			venueProvider = feed
		}
		apiServer = api.NewServer(cfg.API.Addr, tr, venueProvider,
			printer, format.NewCollator(tag))
		if err := apiServer.Start(ctx); err != nil {
			log.Printf("warning: api server failed to start: %v", err)
		}
	}

	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	if err := tr.Run(ctx); err != nil && err != context.Canceled {
		log.Printf("run error: %v", err)
	}

	if apiServer != nil {
		_ = apiServer.Shutdown(context.Background())
	}
}

// runDailyDigest sends the leaderboard digest to Telegram once a day.
func runDailyDigest(ctx context.Context, tr *tracker.Tracker, notifier *notify.Notifier, printer *format.Printer) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap, ok := tr.Snapshot()
			if !ok {
				continue
			}
			d := digest.Build(snap, printer)
			if err := notifier.NotifyDailyDigest(ctx, digest.RenderHTML(d)); err != nil {
				log.Printf("daily digest: %v", err)
			}
		}
	}
}

// Package api serves the dashboard over HTTP: the builder revenue
// leaderboard, the aura comparison views, export surfaces and a manual
// refresh endpoint.
package api

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"

	"github.com/GoPolymarket/aura-dashboard/internal/comparison"
	"github.com/GoPolymarket/aura-dashboard/internal/digest"
	"github.com/GoPolymarket/aura-dashboard/internal/format"
	"github.com/GoPolymarket/aura-dashboard/internal/leaderboard"
	"github.com/GoPolymarket/aura-dashboard/internal/tracker"
	"github.com/GoPolymarket/aura-dashboard/internal/upstream"
	"github.com/GoPolymarket/aura-dashboard/internal/venue"
)

// SnapshotProvider exposes the tracker's snapshot state for the API layer.
type SnapshotProvider interface {
	Snapshot() (*tracker.Snapshot, bool)
	LastError() error
	LastSync() time.Time
	Stale() bool
	TimeRange() string
	Refresh(ctx context.Context, timeRange string) error
}

// VenueProvider exposes on-venue feed health (nil if unavailable).
type VenueProvider interface {
	Status() venue.Status
}

// Server is a lightweight HTTP API for the revenue dashboard.
type Server struct {
	httpServer *http.Server
	snapshots  SnapshotProvider
	venue      VenueProvider
	printer    *format.Printer
	collator   *collate.Collator
	startedAt  time.Time
}

// NewServer creates a new API server bound to addr.
func NewServer(addr string, snapshots SnapshotProvider, venueFeed VenueProvider, printer *format.Printer, collator *collate.Collator) *Server {
	s := &Server{
		snapshots: snapshots,
		venue:     venueFeed,
		printer:   printer,
		collator:  collator,
		startedAt: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/ready", s.handleReady)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("/api/comparison", s.handleComparison)
	mux.HandleFunc("/api/report", s.handleReport)
	mux.HandleFunc("/api/refresh", s.handleRefresh)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start begins serving HTTP requests.
func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	log.Printf("api server listening on %s", s.httpServer.Addr)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("api server: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": msg})
}

// currentSnapshot resolves the latest good snapshot or writes the single
// dashboard-wide error surface: one 503 carrying the last load error, never
// per-section partial failures.
func (s *Server) currentSnapshot(w http.ResponseWriter) (*tracker.Snapshot, bool) {
	snap, ok := s.snapshots.Snapshot()
	if !ok {
		msg := "no data loaded"
		if err := s.snapshots.LastError(); err != nil {
			msg = err.Error()
		}
		s.writeError(w, http.StatusServiceUnavailable, msg)
		return nil, false
	}
	return snap, true
}

// GET /api/health — liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"ok":       true,
		"uptime_s": time.Since(s.startedAt).Seconds(),
	})
}

// GET /api/ready — readiness probe: a snapshot exists and is fresh.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	_, loaded := s.snapshots.Snapshot()
	stale := s.snapshots.Stale()
	ready := loaded && !stale
	resp := map[string]interface{}{
		"ready":    ready,
		"uptime_s": time.Since(s.startedAt).Seconds(),
	}
	if !ready {
		if !loaded {
			resp["reason"] = "no_snapshot"
		} else {
			resp["reason"] = "snapshot_stale"
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	s.writeJSON(w, resp)
}

// GET /api/status — overall dashboard status.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	snap, loaded := s.snapshots.Snapshot()
	resp := map[string]interface{}{
		"loaded":     loaded,
		"stale":      s.snapshots.Stale(),
		"time_range": s.snapshots.TimeRange(),
		"uptime_s":   time.Since(s.startedAt).Seconds(),
	}
	if loaded {
		resp["loaded_at"] = snap.LoadedAt
		resp["builders"] = len(snap.Revenue.Builders)
		resp["projects"] = len(snap.Projects)
	}
	if err := s.snapshots.LastError(); err != nil {
		resp["last_error"] = err.Error()
	}
	if s.venue != nil {
		resp["venue"] = s.venue.Status()
	}
	s.writeJSON(w, resp)
}

// GET /api/leaderboard?sort=rank&dir=desc&page=1 — the sortable, paginated
// builder revenue table plus the summary cards. format=csv exports the full
// sorted row set.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.currentSnapshot(w)
	if !ok {
		return
	}

	q := r.URL.Query()
	field, err := leaderboard.ParseField(q.Get("sort"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dir, err := leaderboard.ParseDirection(q.Get("dir"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page := 1
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("api: invalid page %q", v))
			return
		}
		page = n
	}

	rows := leaderboard.BuildRows(snap.Revenue.Builders, snap.AuraRanks)

	// Replay the requested sort state onto a fresh table: selecting a
	// non-default column starts it descending, a second select on the same
	// column toggles it ascending.
	table := leaderboard.NewTable(rows, s.collator)
	if field != leaderboard.FieldRank {
		table.SortBy(field)
	}
	if dir == leaderboard.Asc {
		table.SortBy(field)
	}
	table.SetPage(page)

	if strings.EqualFold(strings.TrimSpace(q.Get("format")), "csv") {
		s.writeLeaderboardCSV(w, leaderboard.SortRows(rows, field, dir, s.collator))
		return
	}

	s.writeJSON(w, map[string]interface{}{
		"timeRange": snap.TimeRange,
		"sort":      string(field),
		"dir":       string(dir),
		"summary":   s.summaryCards(snap.Revenue),
		"table":     table.Current(),
		"updatedAt": snap.LoadedAt,
	})
}

// summaryCards formats the dashboard's stat cards.
func (s *Server) summaryCards(rev upstream.RevenueSnapshot) map[string]string {
	return map[string]string{
		"totalRevenue":   s.printer.CompactCurrency(rev.TotalRevenue),
		"totalVolume":    s.printer.CompactCurrency(rev.TotalVolume),
		"activeBuilders": s.printer.Count(rev.ActiveBuilders),
		"growthRate":     s.printer.Percent(rev.GrowthRate),
	}
}

func (s *Server) writeLeaderboardCSV(w http.ResponseWriter, rows []leaderboard.Row) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.csv"`)
	cw := csv.NewWriter(w)
	header := []string{"rank", "builder_code", "builder_name", "total_revenue", "total_volume", "total_trades", "aura_rank", "badge"}
	if err := cw.Write(header); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for _, row := range rows {
		auraRank := ""
		if row.AuraRank > 0 {
			auraRank = strconv.Itoa(row.AuraRank)
		}
		record := []string{
			strconv.Itoa(row.DisplayRank),
			row.Code,
			row.Name,
			fmt.Sprintf("%.2f", row.Revenue),
			fmt.Sprintf("%.2f", row.Volume),
			strconv.Itoa(row.Trades),
			auraRank,
			row.Badge,
		}
		if err := cw.Write(record); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GET /api/comparison?view=aura — the aura standings (podium plus tiers) or
// the detailed scoring breakdown table.
func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.currentSnapshot(w)
	if !ok {
		return
	}

	view, err := comparison.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := map[string]interface{}{
		"view":      string(view),
		"projects":  len(snap.Projects),
		"updatedAt": snap.LoadedAt,
	}
	switch view {
	case comparison.ViewDetailed:
		resp["rows"] = comparison.BuildDetailRows(snap.Projects)
	default:
		resp["standings"] = comparison.BuildAuraView(snap.Projects)
	}
	s.writeJSON(w, resp)
}

// GET /api/report — the markdown revenue report.
func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.currentSnapshot(w)
	if !ok {
		return
	}
	d := digest.Build(snap, s.printer)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if _, err := w.Write([]byte(digest.RenderMarkdown(d))); err != nil {
		log.Printf("api: write report: %v", err)
	}
}

// POST /api/refresh?timeRange=7d — the dashboard's manual reload. A
// successful refresh also switches the periodic loop to the requested
// window.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, http.StatusMethodNotAllowed, "api: refresh requires POST")
		return
	}

	timeRange := r.URL.Query().Get("timeRange")
	if _, err := upstream.NormalizeTimeRange(timeRange); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.snapshots.Refresh(r.Context(), timeRange); err != nil {
		if errors.Is(err, tracker.ErrStaleLoad) {
			s.writeError(w, http.StatusConflict, err.Error())
			return
		}
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	snap, _ := s.snapshots.Snapshot()
	resp := map[string]interface{}{
		"refreshed":  true,
		"time_range": s.snapshots.TimeRange(),
	}
	if snap != nil {
		resp["loaded_at"] = snap.LoadedAt
		resp["builders"] = len(snap.Revenue.Builders)
		resp["projects"] = len(snap.Projects)
	}
	s.writeJSON(w, resp)
}

// Package leaderboard builds the sortable, paginated builder revenue table.
// Display rank is always derived from revenue order; sorting by any other
// column never changes a builder's rank badge.
package leaderboard

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"

	"github.com/GoPolymarket/aura-dashboard/internal/upstream"
)

// PageSize is the fixed number of rows per leaderboard page.
const PageSize = 10

// missingAuraRank is the sort key for builders absent from the aura
// standings; they sink below every ranked builder.
const missingAuraRank = 999

// Field selects the leaderboard sort column.
type Field string

const (
	FieldRank    Field = "rank"
	FieldName    Field = "name"
	FieldRevenue Field = "revenue"
	FieldAura    Field = "aura"
)

// ParseField validates a sort field query value. Empty input defaults to
// the rank column.
func ParseField(raw string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return FieldRank, nil
	case FieldRank:
		return FieldRank, nil
	case FieldName:
		return FieldName, nil
	case FieldRevenue:
		return FieldRevenue, nil
	case FieldAura:
		return FieldAura, nil
	}
	return "", fmt.Errorf("leaderboard: unknown sort field %q (supported: rank|name|revenue|aura)", raw)
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection validates a sort direction query value. Empty input
// defaults to descending, matching the direction a freshly selected column
// starts with.
func ParseDirection(raw string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return Desc, nil
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("leaderboard: unknown sort direction %q (supported: asc|desc)", raw)
}

// Row is one leaderboard entry.
type Row struct {
	DisplayRank int     `json:"rank"`
	Code        string  `json:"builderCode"`
	Name        string  `json:"builderName"`
	Revenue     float64 `json:"totalRevenue"`
	Volume      float64 `json:"totalVolume"`
	Trades      int     `json:"totalTrades"`
	AuraRank    int     `json:"auraRank,omitempty"`
	Badge       string  `json:"badge"`
}

func (r Row) auraSortKey() int {
	if r.AuraRank == 0 {
		return missingAuraRank
	}
	return r.AuraRank
}

func badgeFor(rank int) string {
	switch rank {
	case 1:
		return "gold"
	case 2:
		return "silver"
	case 3:
		return "bronze"
	}
	return "default"
}

// BuildRows converts upstream builders into display rows. Rows come back
// in display-rank order (revenue descending, ties keeping upstream order)
// with aura ranks joined by display name.
func BuildRows(builders []upstream.Builder, auraRanks map[string]int) []Row {
	ordered := make([]upstream.Builder, len(builders))
	copy(ordered, builders)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TotalRevenue > ordered[j].TotalRevenue
	})

	rows := make([]Row, len(ordered))
	for i, b := range ordered {
		rows[i] = Row{
			DisplayRank: i + 1,
			Code:        b.Code,
			Name:        b.Name,
			Revenue:     b.TotalRevenue,
			Volume:      b.TotalVolume,
			Trades:      b.TotalTrades,
			AuraRank:    auraRanks[b.Name],
			Badge:       badgeFor(i + 1),
		}
	}
	return rows
}

// SortRows returns a sorted copy of rows. The rank column sorts by the
// underlying revenue metric, so its descending order always reproduces the
// display ranking no matter what the rows were sorted by before. Name
// ordering is locale-aware through the collator.
func SortRows(rows []Row, field Field, dir Direction, coll *collate.Collator) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	var less func(i, j int) bool
	switch field {
	case FieldName:
		less = func(i, j int) bool { return coll.CompareString(out[i].Name, out[j].Name) < 0 }
	case FieldAura:
		less = func(i, j int) bool { return out[i].auraSortKey() < out[j].auraSortKey() }
	default: // FieldRank and FieldRevenue share the revenue metric.
		less = func(i, j int) bool { return out[i].Revenue < out[j].Revenue }
	}
	if dir == Desc {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(out, less)
	return out
}

// PageView is one page of the leaderboard plus paging metadata.
type PageView struct {
	Rows      []Row `json:"rows"`
	Page      int   `json:"page"`
	PageCount int   `json:"pageCount"`
	TotalRows int   `json:"totalRows"`
	HasNext   bool  `json:"hasNext"`
	HasPrev   bool  `json:"hasPrev"`
}

// Paginate slices rows into the fixed-size page, clamping the requested
// page into range.
func Paginate(rows []Row, page int) PageView {
	pageCount := (len(rows) + PageSize - 1) / PageSize
	if pageCount == 0 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	return PageView{
		Rows:      rows[start:end],
		Page:      page,
		PageCount: pageCount,
		TotalRows: len(rows),
		HasNext:   page < pageCount,
		HasPrev:   page > 1,
	}
}

// Table is the leaderboard's client-side sort/page state machine: repeated
// sorts on one column toggle direction, switching columns resets to
// descending, and any sort change snaps back to page 1.
type Table struct {
	rows  []Row
	coll  *collate.Collator
	field Field
	dir   Direction
	page  int
}

// NewTable creates a Table over display-ordered rows, starting on the rank
// column descending at page 1.
func NewTable(rows []Row, coll *collate.Collator) *Table {
	return &Table{rows: rows, coll: coll, field: FieldRank, dir: Desc, page: 1}
}

// SortBy selects a sort column, toggling direction when the column is
// already active. The page resets to 1 either way.
func (t *Table) SortBy(field Field) {
	if field == t.field {
		if t.dir == Desc {
			t.dir = Asc
		} else {
			t.dir = Desc
		}
	} else {
		t.field = field
		t.dir = Desc
	}
	t.page = 1
}

// SetPage moves to a page; Current clamps it into range.
func (t *Table) SetPage(page int) {
	t.page = page
}

// Sort returns the active sort column and direction.
func (t *Table) Sort() (Field, Direction) {
	return t.field, t.dir
}

// Current renders the table's current page under its sort state.
func (t *Table) Current() PageView {
	return Paginate(SortRows(t.rows, t.field, t.dir, t.coll), t.page)
}

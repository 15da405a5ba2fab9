// Package directory implements the spartans directory listing: the pure
// filter/search/sort/paginate pipeline, the generated dataset, and the
// simulated fetch that stands in for a remote API.
package directory

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/msomdec/spartan-directory/internal/domain"
)

// Filter is the coarse status predicate applied before search.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterAvailable   Filter = "available"
	FilterUnavailable Filter = "unavailable"
)

// SortKey names a sortable column. The empty key means unsorted.
type SortKey string

const (
	SortByName        SortKey = "name"
	SortByDesignation SortKey = "designation"
	SortByCollege     SortKey = "college"
	SortByDateJoined  SortKey = "dateJoined"
	SortByApprovedBy  SortKey = "approvedBy"
	SortByStatus      SortKey = "status"
)

// SortOrder is the sort direction. The empty order means unsorted.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// PageSize is the fixed number of rows on a directory page.
const PageSize = 12

// ViewState is the ephemeral listing state the pipeline is parameterized by.
// A half-configured sort (key without order, or order without key) is valid
// and means unsorted.
type ViewState struct {
	Filter      Filter
	SearchQuery string
	SortKey     SortKey
	SortOrder   SortOrder
	Page        int
}

// WithFilter returns the state with the status filter changed and the page
// reset to the first page.
func (v ViewState) WithFilter(f Filter) ViewState {
	v.Filter = f
	v.Page = 1
	return v
}

// WithSearch returns the state with the search query changed and the page
// reset to the first page.
func (v ViewState) WithSearch(query string) ViewState {
	v.SearchQuery = query
	v.Page = 1
	return v
}

// WithPage returns the state with only the page number changed.
func (v ViewState) WithPage(page int) ViewState {
	v.Page = page
	return v
}

// WithSort applies the column-header cycling policy: activating a new column
// starts ascending, a second activation of the same column flips to
// descending, and a third clears both key and order. Any sort change resets
// the page to 1.
func (v ViewState) WithSort(key SortKey) ViewState {
	v.Page = 1
	if v.SortKey != key {
		v.SortKey = key
		v.SortOrder = OrderAsc
		return v
	}
	switch v.SortOrder {
	case OrderAsc:
		v.SortOrder = OrderDesc
	case OrderDesc:
		v.SortKey = ""
		v.SortOrder = ""
	}
	return v
}

// Page is the pipeline output for a single render.
type Page struct {
	Items         []domain.Spartan
	TotalFiltered int
	TotalPages    int
	Page          int // clamped page actually rendered
	PageSize      int
	RangeStart    int // 1-based index of the first visible item, 0 when empty
	RangeEnd      int // 1-based index of the last visible item, 0 when empty
}

// Render runs the full pipeline: status filter, search, sort, pagination.
// It is pure and deterministic: the same dataset and view state always
// produce the same page, and the input slice is never modified.
func Render(dataset []domain.Spartan, view ViewState) Page {
	filtered := filterByStatus(dataset, view.Filter)
	filtered = filterBySearch(filtered, view.SearchQuery)
	sorted := sortRecords(filtered, view.SortKey, view.SortOrder)
	return paginate(sorted, view.Page)
}

func filterByStatus(records []domain.Spartan, f Filter) []domain.Spartan {
	var status domain.SpartanStatus
	switch f {
	case FilterAvailable:
		status = domain.StatusAvailable
	case FilterUnavailable:
		status = domain.StatusUnavailable
	default:
		return records
	}

	out := make([]domain.Spartan, 0, len(records))
	for _, r := range records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

func filterBySearch(records []domain.Spartan, query string) []domain.Spartan {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	out := make([]domain.Spartan, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Designation), q) ||
			strings.Contains(strings.ToLower(r.College), q) {
			out = append(out, r)
		}
	}
	return out
}

// sortRecords returns a stably sorted copy. Either the key or the order being
// unset disables sorting entirely.
func sortRecords(records []domain.Spartan, key SortKey, order SortOrder) []domain.Spartan {
	if key == "" || order == "" {
		return records
	}
	less := lessFunc(key)
	if less == nil {
		return records
	}

	out := append([]domain.Spartan(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		if order == OrderDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(key SortKey) func(a, b domain.Spartan) bool {
	switch key {
	case SortByName:
		return func(a, b domain.Spartan) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortByDesignation:
		return func(a, b domain.Spartan) bool {
			return strings.ToLower(a.Designation) < strings.ToLower(b.Designation)
		}
	case SortByCollege:
		return func(a, b domain.Spartan) bool {
			return strings.ToLower(a.College) < strings.ToLower(b.College)
		}
	case SortByApprovedBy:
		return func(a, b domain.Spartan) bool {
			return strings.ToLower(a.ApprovedBy) < strings.ToLower(b.ApprovedBy)
		}
	case SortByDateJoined:
		return func(a, b domain.Spartan) bool {
			return parseJoinDate(a.DateJoined).Before(parseJoinDate(b.DateJoined))
		}
	case SortByStatus:
		// available ranks above unavailable, so ascending order places
		// unavailable rows first.
		return func(a, b domain.Spartan) bool {
			return statusRank(a.Status) < statusRank(b.Status)
		}
	}
	return nil
}

func statusRank(s domain.SpartanStatus) int {
	if s == domain.StatusAvailable {
		return 1
	}
	return 0
}

// parseJoinDate parses the d/m/yy join-date format. Two-digit years below 50
// fall in the 2000s, the rest in the 1900s. An unparseable date yields the
// zero time so it sorts before every real date instead of failing.
func parseJoinDate(s string) time.Time {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}
	}
	day, errD := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	year, errY := strconv.Atoi(parts[2])
	if errD != nil || errM != nil || errY != nil {
		return time.Time{}
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 0 {
		return time.Time{}
	}
	if year < 50 {
		year += 2000
	} else if year < 100 {
		year += 1900
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func paginate(records []domain.Spartan, page int) Page {
	total := len(records)
	totalPages := (total + PageSize - 1) / PageSize

	// The minimum exposed page is 1; out-of-range requests clamp instead of
	// slicing out of bounds.
	maxPage := totalPages
	if maxPage < 1 {
		maxPage = 1
	}
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	start := (page - 1) * PageSize
	end := min(start+PageSize, total)

	p := Page{
		Items:         records[start:end],
		TotalFiltered: total,
		TotalPages:    totalPages,
		Page:          page,
		PageSize:      PageSize,
	}
	if total > 0 {
		p.RangeStart = start + 1
		p.RangeEnd = end
	}
	return p
}

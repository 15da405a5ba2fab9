package directory_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/msomdec/spartan-directory/internal/directory"
	"github.com/msomdec/spartan-directory/internal/domain"
)

func record(id, name, designation, college, dateJoined string, status domain.SpartanStatus) domain.Spartan {
	return domain.Spartan{
		ID:          id,
		Name:        name,
		Designation: designation,
		College:     college,
		DateJoined:  dateJoined,
		ApprovedBy:  "Sahil Mehra - Central Admin",
		Status:      status,
	}
}

func ids(items []domain.Spartan) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.ID
	}
	return out
}

func equalIDs(t *testing.T, got []domain.Spartan, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d items %v, got %d items %v", len(want), want, len(got), ids(got))
	}
	for i, s := range got {
		if s.ID != want[i] {
			t.Fatalf("expected ids %v, got %v", want, ids(got))
		}
	}
}

func defaultView() directory.ViewState {
	return directory.ViewState{Filter: directory.FilterAll, Page: 1}
}

func TestRender_NoFilters_ReturnsAllInOrder(t *testing.T) {
	dataset := []domain.Spartan{
		record("1", "Priya Rai", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("2", "Nikhil Das", "City Lead", "Christ, Bangalore", "14/2/23", domain.StatusUnavailable),
		record("3", "Kavya Iyer", "Campus Admin", "VIT, Chennai", "05/3/23", domain.StatusAvailable),
	}

	page := directory.Render(dataset, defaultView())

	equalIDs(t, page.Items, "1", "2", "3")
	if page.TotalFiltered != 3 {
		t.Fatalf("expected 3 filtered, got %d", page.TotalFiltered)
	}
	if page.TotalPages != 1 {
		t.Fatalf("expected 1 page, got %d", page.TotalPages)
	}
}

func TestRender_DoesNotModifyInput(t *testing.T) {
	dataset := []domain.Spartan{
		record("1", "Bravo", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("2", "Alpha", "Admin", "IIT Delhi", "14/2/23", domain.StatusAvailable),
	}

	directory.Render(dataset, directory.ViewState{
		Filter:    directory.FilterAll,
		SortKey:   directory.SortByName,
		SortOrder: directory.OrderAsc,
		Page:      1,
	})

	equalIDs(t, dataset, "1", "2")
}

func TestRender_StatusFilterPartitions(t *testing.T) {
	dataset := []domain.Spartan{
		record("1", "A", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("2", "B", "Admin", "IIT Delhi", "23/1/23", domain.StatusUnavailable),
		record("3", "C", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("4", "D", "Admin", "IIT Delhi", "23/1/23", domain.StatusUnavailable),
		record("5", "E", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
	}

	all := directory.Render(dataset, defaultView())
	available := directory.Render(dataset, defaultView().WithFilter(directory.FilterAvailable))
	unavailable := directory.Render(dataset, defaultView().WithFilter(directory.FilterUnavailable))

	// The two partitions are disjoint and together cover the whole dataset.
	if available.TotalFiltered+unavailable.TotalFiltered != all.TotalFiltered {
		t.Fatalf("partitions do not cover dataset: %d + %d != %d",
			available.TotalFiltered, unavailable.TotalFiltered, all.TotalFiltered)
	}
	equalIDs(t, available.Items, "1", "3", "5")
	equalIDs(t, unavailable.Items, "2", "4")
	for _, s := range available.Items {
		if s.Status != domain.StatusAvailable {
			t.Fatalf("record %s leaked into available partition", s.ID)
		}
	}
}

func TestRender_SearchMatchesThreeFields(t *testing.T) {
	dataset := []domain.Spartan{
		record("1", "Priya Rai", "City Admin", "St. Xavier's, Mumbai", "23/1/23", domain.StatusAvailable),
		record("2", "Vikram Singh", "Regional Head", "City College, Pune", "14/2/23", domain.StatusAvailable),
		record("3", "Meera Chopra", "Campus Admin", "IIT Delhi", "05/3/23", domain.StatusAvailable),
	}

	// "city" matches record 1 by designation and record 2 by college, never
	// record 3.
	page := directory.Render(dataset, defaultView().WithSearch("city"))
	equalIDs(t, page.Items, "1", "2")

	// Every returned record contains the query in at least one searched field.
	for _, s := range page.Items {
		haystack := strings.ToLower(s.Name + " " + s.Designation + " " + s.College)
		if !strings.Contains(haystack, "city") {
			t.Fatalf("record %s does not match query", s.ID)
		}
	}
}

func TestRender_SearchTrimsAndIgnoresCase(t *testing.T) {
	dataset := []domain.Spartan{
		record("1", "Priya Rai", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("2", "Rohan Bhat", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
	}

	base := directory.Render(dataset, defaultView().WithSearch("priya"))
	padded := directory.Render(dataset, defaultView().WithSearch("  PRIYA  "))

	equalIDs(t, base.Items, "1")
	equalIDs(t, padded.Items, ids(base.Items)...)
}

func TestRender_WhitespaceOnlySearchMatchesAll(t *testing.T) {
	dataset := []domain.Spartan{
		record("1", "A", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("2", "B", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
	}

	page := directory.Render(dataset, defaultView().WithSearch("   "))
	equalIDs(t, page.Items, "1", "2")
}

func TestRender_SortAscDesc(t *testing.T) {
	dataset := []domain.Spartan{
		record("1", "Charlie", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("2", "alpha", "Admin", "IIT Delhi", "14/2/23", domain.StatusAvailable),
		record("3", "Bravo", "Admin", "IIT Delhi", "05/3/23", domain.StatusAvailable),
	}

	view := defaultView()
	view.SortKey = directory.SortByName
	view.SortOrder = directory.OrderAsc

	asc := directory.Render(dataset, view)
	equalIDs(t, asc.Items, "2", "3", "1")

	view.SortOrder = directory.OrderDesc
	desc := directory.Render(dataset, view)
	equalIDs(t, desc.Items, "1", "3", "2")
}

func TestRender_SortStableOnTies(t *testing.T) {
	// All four records share the same college; sorting by college must keep
	// the incoming order, in both directions.
	dataset := []domain.Spartan{
		record("1", "A", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("2", "B", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("3", "C", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("4", "D", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
	}

	view := defaultView()
	view.SortKey = directory.SortByCollege

	view.SortOrder = directory.OrderAsc
	equalIDs(t, directory.Render(dataset, view).Items, "1", "2", "3", "4")

	view.SortOrder = directory.OrderDesc
	equalIDs(t, directory.Render(dataset, view).Items, "1", "2", "3", "4")
}

func TestRender_SortByDateJoined(t *testing.T) {
	dataset := []domain.Spartan{
		record("1", "A", "Admin", "IIT Delhi", "09/5/23", domain.StatusAvailable),
		record("2", "B", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("3", "C", "Admin", "IIT Delhi", "14/2/99", domain.StatusAvailable), // 1999
		record("4", "D", "Admin", "IIT Delhi", "garbage", domain.StatusAvailable), // sorts lowest
	}

	view := defaultView()
	view.SortKey = directory.SortByDateJoined
	view.SortOrder = directory.OrderAsc

	page := directory.Render(dataset, view)
	equalIDs(t, page.Items, "4", "3", "2", "1")
}

func TestRender_SortByStatus(t *testing.T) {
	dataset := []domain.Spartan{
		record("1", "A", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("2", "B", "Admin", "IIT Delhi", "23/1/23", domain.StatusUnavailable),
		record("3", "C", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
	}

	view := defaultView()
	view.SortKey = directory.SortByStatus

	// Ascending puts unavailable first, descending puts available first.
	view.SortOrder = directory.OrderAsc
	equalIDs(t, directory.Render(dataset, view).Items, "2", "1", "3")

	view.SortOrder = directory.OrderDesc
	equalIDs(t, directory.Render(dataset, view).Items, "1", "3", "2")
}

func TestRender_HalfConfiguredSortIsNoSort(t *testing.T) {
	dataset := []domain.Spartan{
		record("1", "Charlie", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("2", "Alpha", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
	}

	keyOnly := defaultView()
	keyOnly.SortKey = directory.SortByName
	equalIDs(t, directory.Render(dataset, keyOnly).Items, "1", "2")

	orderOnly := defaultView()
	orderOnly.SortOrder = directory.OrderAsc
	equalIDs(t, directory.Render(dataset, orderOnly).Items, "1", "2")
}

func TestWithSort_CyclesAscDescClear(t *testing.T) {
	view := defaultView()

	view = view.WithSort(directory.SortByName)
	if view.SortKey != directory.SortByName || view.SortOrder != directory.OrderAsc {
		t.Fatalf("first activation: got key=%q order=%q", view.SortKey, view.SortOrder)
	}

	view = view.WithSort(directory.SortByName)
	if view.SortOrder != directory.OrderDesc {
		t.Fatalf("second activation: got order=%q", view.SortOrder)
	}

	view = view.WithSort(directory.SortByName)
	if view.SortKey != "" || view.SortOrder != "" {
		t.Fatalf("third activation should clear sort, got key=%q order=%q", view.SortKey, view.SortOrder)
	}
}

func TestWithSort_NewColumnStartsAscending(t *testing.T) {
	view := defaultView().WithSort(directory.SortByName).WithSort(directory.SortByName)
	if view.SortOrder != directory.OrderDesc {
		t.Fatalf("setup: got order=%q", view.SortOrder)
	}

	view = view.WithSort(directory.SortByCollege)
	if view.SortKey != directory.SortByCollege || view.SortOrder != directory.OrderAsc {
		t.Fatalf("new column: got key=%q order=%q", view.SortKey, view.SortOrder)
	}
}

func TestWithSort_ThreeClicksRestoreOriginalOrder(t *testing.T) {
	dataset := []domain.Spartan{
		record("1", "Charlie", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("2", "Alpha", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
		record("3", "Bravo", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
	}

	view := defaultView()
	before := directory.Render(dataset, view)

	view = view.WithSort(directory.SortByName).
		WithSort(directory.SortByName).
		WithSort(directory.SortByName)
	after := directory.Render(dataset, view)

	equalIDs(t, after.Items, ids(before.Items)...)
}

func TestViewState_ChangesResetPage(t *testing.T) {
	view := defaultView().WithPage(3)

	if got := view.WithFilter(directory.FilterAvailable).Page; got != 1 {
		t.Fatalf("filter change: expected page 1, got %d", got)
	}
	if got := view.WithSearch("x").Page; got != 1 {
		t.Fatalf("search change: expected page 1, got %d", got)
	}
	if got := view.WithSort(directory.SortByName).Page; got != 1 {
		t.Fatalf("sort change: expected page 1, got %d", got)
	}
}

func TestRender_PaginationPartition(t *testing.T) {
	dataset := make([]domain.Spartan, 30)
	for i := range dataset {
		dataset[i] = record(strconv.Itoa(i+1), "A", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable)
	}

	view := defaultView()
	var seen []domain.Spartan
	first := directory.Render(dataset, view)
	for p := 1; p <= first.TotalPages; p++ {
		page := directory.Render(dataset, view.WithPage(p))
		if p < first.TotalPages && len(page.Items) != directory.PageSize {
			t.Fatalf("page %d: expected %d items, got %d", p, directory.PageSize, len(page.Items))
		}
		seen = append(seen, page.Items...)
	}

	if len(seen) != len(dataset) {
		t.Fatalf("pages do not partition dataset: %d vs %d", len(seen), len(dataset))
	}
	for i := range seen {
		if seen[i].ID != dataset[i].ID {
			t.Fatalf("item %d out of order", i)
		}
	}
}

func TestRender_PageClamping(t *testing.T) {
	dataset := make([]domain.Spartan, 30) // 3 pages of 12
	for i := range dataset {
		dataset[i] = record(strconv.Itoa(i+1), "A", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable)
	}

	over := directory.Render(dataset, defaultView().WithPage(99))
	if over.Page != 3 {
		t.Fatalf("expected clamp to last page 3, got %d", over.Page)
	}
	if len(over.Items) != 6 {
		t.Fatalf("expected 6 items on last page, got %d", len(over.Items))
	}

	under := directory.Render(dataset, defaultView().WithPage(-5))
	if under.Page != 1 {
		t.Fatalf("expected clamp to page 1, got %d", under.Page)
	}
}

func TestRender_RangeMetadata(t *testing.T) {
	dataset := make([]domain.Spartan, 30)
	for i := range dataset {
		dataset[i] = record(strconv.Itoa(i+1), "A", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable)
	}

	second := directory.Render(dataset, defaultView().WithPage(2))
	if second.RangeStart != 13 || second.RangeEnd != 24 {
		t.Fatalf("page 2: expected range 13-24, got %d-%d", second.RangeStart, second.RangeEnd)
	}

	last := directory.Render(dataset, defaultView().WithPage(3))
	if last.RangeStart != 25 || last.RangeEnd != 30 {
		t.Fatalf("page 3: expected range 25-30, got %d-%d", last.RangeStart, last.RangeEnd)
	}
}

func TestRender_LastPageScenario(t *testing.T) {
	// 50 items at page size 12: five pages, a partial last page of 2, and a
	// next-page control that has nothing past page 5.
	dataset := make([]domain.Spartan, 50)
	for i := range dataset {
		dataset[i] = record(strconv.Itoa(i+1), "A", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable)
	}

	page := directory.Render(dataset, defaultView().WithPage(5))

	if page.TotalPages != 5 {
		t.Fatalf("expected 5 pages, got %d", page.TotalPages)
	}
	if page.RangeStart != 49 || page.RangeEnd != 50 || page.TotalFiltered != 50 {
		t.Fatalf("expected items 49-50 of 50, got %d-%d of %d", page.RangeStart, page.RangeEnd, page.TotalFiltered)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items on the last page, got %d", len(page.Items))
	}

	// One page further clamps back to the same last page.
	beyond := directory.Render(dataset, defaultView().WithPage(6))
	if beyond.Page != 5 {
		t.Fatalf("expected clamp to page 5, got %d", beyond.Page)
	}
}

func TestRender_EmptyResult(t *testing.T) {
	dataset := []domain.Spartan{
		record("1", "Priya Rai", "Admin", "IIT Delhi", "23/1/23", domain.StatusAvailable),
	}

	page := directory.Render(dataset, defaultView().WithSearch("zzz-no-match"))

	if len(page.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(page.Items))
	}
	if page.TotalFiltered != 0 || page.TotalPages != 0 {
		t.Fatalf("expected zero totals, got filtered=%d pages=%d", page.TotalFiltered, page.TotalPages)
	}
	if page.Page != 1 {
		t.Fatalf("expected page 1 on empty result, got %d", page.Page)
	}
	if page.RangeStart != 0 || page.RangeEnd != 0 {
		t.Fatalf("expected zero range on empty result, got %d-%d", page.RangeStart, page.RangeEnd)
	}
}

func TestRender_AvailableCitySearch(t *testing.T) {
	// Three available records, two of them "City Admin"; filtering to
	// available and searching "City" keeps exactly those two.
	dataset := []domain.Spartan{
		record("1", "Priya Rai", "City Admin", "St. Xavier's, Mumbai", "23/1/23", domain.StatusAvailable),
		record("2", "Ananya Gupta", "Regional Head", "NMIMS, Mumbai", "14/2/23", domain.StatusAvailable),
		record("3", "Vikram Singh", "City Admin", "IIT Delhi", "05/3/23", domain.StatusAvailable),
		record("4", "Nikhil Das", "City Lead", "Christ, Bangalore", "18/4/23", domain.StatusUnavailable),
		record("5", "Kavya Iyer", "Campus Admin", "VIT, Chennai", "09/5/23", domain.StatusUnavailable),
	}

	view := directory.ViewState{
		Filter:      directory.FilterAvailable,
		SearchQuery: "City",
		Page:        1,
	}

	page := directory.Render(dataset, view)
	equalIDs(t, page.Items, "1", "3")
	if page.TotalFiltered != 2 {
		t.Fatalf("expected 2 filtered, got %d", page.TotalFiltered)
	}
}

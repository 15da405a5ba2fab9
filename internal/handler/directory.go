package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/msomdec/spartan-directory/internal/directory"
	"github.com/msomdec/spartan-directory/internal/domain"
	"github.com/msomdec/spartan-directory/internal/service"
)

// DirectoryHandler handles spartans directory listing requests.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(dir *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: dir}
}

// HandleList renders one directory page.
// GET /api/spartans?filter=&q=&sort=&order=&page=
// Response: {"items":[...],"totalFiltered":N,"totalPages":N,...}
func (h *DirectoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := h.directory.List(r.Context(), viewStateFromQuery(r.URL.Query()))
	if err != nil {
		h.writeLoadError(w, err, "list spartans")
		return
	}
	writeJSON(w, http.StatusOK, toPageDTO(page))
}

// HandleCounts returns the dataset totals per availability status.
// GET /api/spartans/counts
func (h *DirectoryHandler) HandleCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.directory.CountsByStatus(r.Context())
	if err != nil {
		h.writeLoadError(w, err, "count spartans")
		return
	}
	writeJSON(w, http.StatusOK, toCountsDTO(counts))
}

// HandleRefresh drops the cached dataset so the next listing request
// re-fetches. This backs the "Try Again" action on a failed load.
// POST /api/spartans/refresh
// Response: 204 No Content
func (h *DirectoryHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	h.directory.Refresh()
	w.WriteHeader(http.StatusNoContent)
}

func (h *DirectoryHandler) writeLoadError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, domain.ErrLoadFailed) {
		writeError(w, http.StatusServiceUnavailable, "Failed to load spartans data")
		return
	}
	slog.Error(op, "error", err)
	writeError(w, http.StatusInternalServerError, "An error occurred. Please try again.")
}

// viewStateFromQuery builds the pipeline view state from query parameters.
// Unknown filter, sort, or order values fall back to the pass-through
// defaults; a missing or invalid page falls back to 1 (the pipeline clamps
// out-of-range pages anyway).
func viewStateFromQuery(q url.Values) directory.ViewState {
	view := directory.ViewState{
		Filter:      directory.FilterAll,
		SearchQuery: q.Get("q"),
		Page:        1,
	}

	switch f := directory.Filter(q.Get("filter")); f {
	case directory.FilterAvailable, directory.FilterUnavailable:
		view.Filter = f
	}

	switch key := directory.SortKey(q.Get("sort")); key {
	case directory.SortByName, directory.SortByDesignation, directory.SortByCollege,
		directory.SortByDateJoined, directory.SortByApprovedBy, directory.SortByStatus:
		view.SortKey = key
	}

	switch order := directory.SortOrder(q.Get("order")); order {
	case directory.OrderAsc, directory.OrderDesc:
		view.SortOrder = order
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		view.Page = page
	}

	return view
}

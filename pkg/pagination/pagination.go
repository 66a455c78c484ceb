package pagination

// DefaultLimit is the page size used when the caller supplies none.
const DefaultLimit = 12

// Window describes one page of an offset-paginated result set.
type Window struct {
	Page       int
	Limit      int
	TotalItems int
	TotalPages int
	Start      int
	End        int
	HasNext    bool
	HasPrev    bool
}

// Normalize clamps page and limit to usable values. Non-positive pages
// become 1, non-positive limits fall back to def, and limits above max
// are capped (max <= 0 disables the cap).
func Normalize(page, limit, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = def
	}
	if max > 0 && limit > max {
		limit = max
	}
	return page, limit
}

// Paginate computes the slice window for the given page over a result
// set of totalItems. Pages past the end produce an empty window with
// Start == End == totalItems.
func Paginate(totalItems, page, limit int) Window {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	totalPages := (totalItems + limit - 1) / limit

	start := (page - 1) * limit
	if start > totalItems {
		start = totalItems
	}
	end := start + limit
	if end > totalItems {
		end = totalItems
	}

	return Window{
		Page:       page,
		Limit:      limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
		HasNext:    (page-1)*limit+limit < totalItems,
		HasPrev:    page > 1,
	}
}

package model

// Pagination describes one page of a list result. An empty result set has
// zero pages; page numbers are still 1-based.
type Pagination struct {
	Page            int
	Limit           int
	TotalCount      int64
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// NewPagination derives page metadata from the request and the total row
// count. TotalPages is ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:            page,
		Limit:           limit,
		TotalCount:      total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

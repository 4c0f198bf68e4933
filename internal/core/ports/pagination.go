package ports

// PageRequest carries normalised pagination parameters.
type PageRequest struct {
	Page  int64
	Limit int64
}

// Offset converts the 1-based page number into a row offset.
func (p PageRequest) Offset() int64 {
	return (p.Page - 1) * p.Limit
}

// Normalize clamps out-of-range values to the defaults (page 1, 10 per page).
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 10
	}
	return p
}

// Pagination describes the page of results actually returned.
type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination derives the response envelope from a request and a total count.
func NewPagination(req PageRequest, total int64) Pagination {
	pages := total / req.Limit
	if total%req.Limit != 0 {
		pages++
	}
	return Pagination{Page: req.Page, Limit: req.Limit, Total: total, Pages: pages}
}

package contracts

import "math"

// Pagination is the list metadata both services return under meta.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes page metadata for a list response. An empty
// collection reports one page, not zero.
func NewPagination(page, limit, total int) Pagination {
	perPage := limit
	if perPage < 1 {
		perPage = 1
	}
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(max(1, total)) / float64(perPage))),
	}
}

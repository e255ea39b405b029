package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Limit  int
	Offset int
}

// Pagination is the pagination metadata returned next to a collection.
// swagger:model Pagination
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// NewPagination builds the response metadata for params and a total row count.
func NewPagination(p PaginationParams, total int) Pagination {
	return Pagination{Limit: p.Limit, Offset: p.Offset, Total: total}
}

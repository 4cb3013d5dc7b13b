package search

import "strconv"

const (
	defaultLimit = 12
	maxLimit     = 100
)

// Pager holds clamped page bounds.
type Pager struct {
	Page  int
	Limit int
}

// NewPager parses the raw page and limit parameters. An unparsable page
// or one below 1 clamps to 1; an unparsable limit defaults to 12 and is
// otherwise clamped to [1, 100].
func NewPager(page, limit string) Pager {
	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		p = 1
	}

	l, err := strconv.Atoi(limit)
	if err != nil {
		l = defaultLimit
	}
	if l < 1 {
		l = 1
	}
	if l > maxLimit {
		l = maxLimit
	}

	return Pager{Page: p, Limit: l}
}

// Offset is the number of rows to skip for the requested page.
func (p Pager) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the page metadata returned alongside results.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Paginate computes the metadata for a resolved total count. Pages is
// ceil(total/limit), 0 when nothing matched.
func (p Pager) Paginate(total int64) Pagination {
	pages := 0
	if total > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: pages,
	}
}

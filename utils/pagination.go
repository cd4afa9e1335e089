package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination is the page window requested through ?page= and ?limit=
type Pagination struct {
	Page     int
	Limit    int
	Offset   int
	Total    int64
	LastPage int
}

// NewPagination reads ?page= and ?limit=, falling back to page 1 and the
// default limit on bad input. The limit is capped at MaxPaginationLimit.
func NewPagination(c *gin.Context) *Pagination {
	page := positiveQueryInt(c, "page", 1)
	limit := positiveQueryInt(c, "limit", DefaultPaginationLimit)
	if limit > MaxPaginationLimit {
		limit = MaxPaginationLimit
	}
	return &Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

func positiveQueryInt(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// SetTotal records the matching row count and derives the last page
func (p *Pagination) SetTotal(total int64) {
	p.Total = total
	if p.Limit > 0 {
		p.LastPage = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
}

// PaginatedResponse is the data payload of a paged listing
type PaginatedResponse struct {
	Items       interface{} `json:"items"`
	TotalItems  int64       `json:"total_items"`
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	PerPage     int         `json:"per_page"`
}

// SendPaginatedResponse writes items with their page metadata
func SendPaginatedResponse(c *gin.Context, message string, items interface{}, p *Pagination) {
	Success(c, message, PaginatedResponse{
		Items:       items,
		TotalItems:  p.Total,
		CurrentPage: p.Page,
		LastPage:    p.LastPage,
		PerPage:     p.Limit,
	})
}

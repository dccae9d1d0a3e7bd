// Package paging computes offset and limit values for paginated listings.
package paging

import (
	"fmt"
	"strconv"
)

// DefaultPageSize is used when a page size is not positive.
const DefaultPageSize = 10

// Page describes one page of a listing.
type Page struct {
	ItemCount   int  `json:"item_count"`
	PageCount   int  `json:"page_count"`
	PageIndex   int  `json:"page_index"`
	PageSize    int  `json:"page_size"`
	Offset      int  `json:"offset"`
	Limit       int  `json:"limit"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// New returns the page pageIndex (1-based) of itemCount items split into
// pages of pageSize. An empty or out of range request yields a page with
// index 1, zero limit and no neighbours.
func New(itemCount, pageIndex, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if itemCount < 0 {
		itemCount = 0
	}

	p := Page{
		ItemCount: itemCount,
		PageSize:  pageSize,
		PageCount: itemCount / pageSize,
	}
	if itemCount%pageSize != 0 {
		p.PageCount++
	}
	if itemCount == 0 || pageIndex > p.PageCount || pageIndex < 1 {
		p.PageIndex = 1
		return p
	}

	p.PageIndex = pageIndex
	// pageIndex <= PageCount keeps the offset below itemCount.
	p.Offset = pageSize * (pageIndex - 1)
	p.Limit = pageSize
	p.HasNext = pageIndex < p.PageCount
	p.HasPrevious = pageIndex > 1
	return p
}

// Empty reports whether the page selects no items.
func (p Page) Empty() bool {
	return p.Limit == 0
}

func (p Page) String() string {
	return fmt.Sprintf("item_count: %d, page_count: %d, page_index: %d, page_size: %d, offset: %d, limit: %d",
		p.ItemCount, p.PageCount, p.PageIndex, p.PageSize, p.Offset, p.Limit)
}

// ParseIndex parses a page index from a request value.
// Invalid or non positive values give 1.
func ParseIndex(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

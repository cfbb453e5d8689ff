// Package page implements the pagination arithmetic shared by the TUI and
// the plain CLI listing.
package page

import "fmt"

// Size is the fixed number of entries per page, shared by both browse modes.
const Size = 10

// View describes one page of a list: the slice bounds into the full list
// plus the navigation flags derived from them.
type View struct {
	Current    int // 1-based page number
	TotalPages int // 0 when the list is empty
	TotalItems int
	Start      int // inclusive index into the full list
	End        int // exclusive, clamped to TotalItems
	HasPrev    bool
	HasNext    bool
}

// Paginate computes the page view for the given list size and page number.
func Paginate(totalItems, pageSize, current int) View {
	v := View{
		Current:    current,
		TotalItems: totalItems,
	}

	if totalItems <= 0 || pageSize <= 0 {
		return v
	}

	v.TotalPages = (totalItems + pageSize - 1) / pageSize
	v.Start = (current - 1) * pageSize
	v.End = v.Start + pageSize
	if v.End > totalItems {
		v.End = totalItems
	}
	if v.Start < 0 {
		v.Start = 0
	}
	if v.Start > totalItems {
		v.Start = totalItems
	}

	v.HasPrev = current > 1
	v.HasNext = current < v.TotalPages

	return v
}

// Label returns the human-readable page indicator for the view.
// An empty list reads "0 items" rather than a page-of-pages count.
func (v View) Label() string {
	if v.TotalItems == 0 {
		return "0 items"
	}
	return fmt.Sprintf("Page %d/%d", v.Current, v.TotalPages)
}

// Cursor is an explicit page position threaded through listing calls, so
// independent views each keep their own position.
type Cursor struct {
	Page int // 1-based
}

// NewCursor creates a Cursor at the first page.
func NewCursor() Cursor {
	return Cursor{Page: 1}
}

// Next advances to the following page if one exists; out-of-range requests
// leave the cursor untouched.
func (c Cursor) Next(totalPages int) Cursor {
	if c.Page < totalPages {
		c.Page++
	}
	return c
}

// Prev moves to the preceding page if one exists; out-of-range requests
// leave the cursor untouched.
func (c Cursor) Prev() Cursor {
	if c.Page > 1 {
		c.Page--
	}
	return c
}

// ClampTo pulls the cursor back onto the last page after the list shrank.
// An empty list resets to page 1.
func (c Cursor) ClampTo(totalPages int) Cursor {
	if totalPages < 1 {
		c.Page = 1
		return c
	}
	if c.Page > totalPages {
		c.Page = totalPages
	}
	if c.Page < 1 {
		c.Page = 1
	}
	return c
}

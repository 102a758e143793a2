package model

import "math"

// Page is a one-based page request.
type Page struct {
	Number int
	Size   int
}

// Offset returns the number of items skipped before this page.
// It saturates at math.MaxInt instead of overflowing.
func (p Page) Offset() int {
	if p.Number < 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// PageCount returns ceil(total / size).
func PageCount(total int64, size int) int64 {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + int64(size) - 1) / int64(size)
}

package results

import (
	"strconv"
	"strings"
)

// TotalPages derives the page count from the backend total. It is never
// below one so an empty result still has a first page.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Clamp keeps page inside [0, TotalPages-1].
func Clamp(page, total, size int) int {
	last := TotalPages(total, size) - 1
	if page < 0 {
		return 0
	}
	if page > last {
		return last
	}
	return page
}

// ParseJump converts 1-based user input into a zero-based page index. It
// reports false for anything that is not an integer in [1, totalPages].
func ParseJump(input string, totalPages int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, false
	}
	if n < 1 || n > totalPages {
		return 0, false
	}
	return n - 1, true
}

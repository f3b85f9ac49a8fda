package utils

import (
	"strconv"
)

// StringToInt converts string to int, returns 0 if error
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// ParsePage returns a 1-based page number from a query value.
func ParsePage(s string) int {
	page := StringToInt(s)
	if page < 1 {
		return 1
	}
	return page
}

package cache

import (
	"strconv"
	"strings"
)

// FoodSearchKey is case-insensitive in the query, matching the search itself.
func FoodSearchKey(query string, limit int) string {
	q := strings.ToLower(strings.TrimSpace(query))

	return "foods:search:v1:limit=" + strconv.Itoa(limit) +
		":q=" + q
}

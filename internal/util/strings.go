// Package util provides small formatting helpers shared across taskmanager.
package util

import "fmt"

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count uint64, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// CountOf renders a count with the matching noun, e.g. "1 line" or "3 lines".
func CountOf(count uint64, singular, plural string) string {
	return fmt.Sprintf("%d %s", count, Pluralize(count, singular, plural))
}

// Package codes issues sequential master codes and the comparison keys used for
// uniqueness checks.
package codes

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultWidth is the zero padding used for master codes ("0001").
const DefaultWidth = 4

// Next returns the code following the highest numeric code in existing, zero padded
// to width. Non numeric codes are ignored. Codes wider than width keep their digits.
func Next(existing []string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	max := 0
	for _, c := range existing {
		n, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%0*d", width, max+1)
}

// FoldName is the case-insensitive key for a name: trimmed, inner spaces collapsed,
// Unicode case folded.
func FoldName(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

// SameName reports whether two names collide under FoldName.
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}

// Package textutil renders arbitrary values as short text for diagnostics.
package textutil

import (
	"fmt"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
)

const ellipsis = "..."

var printer = spew.ConfigState{
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Abbreviate renders v as text of at most maxLen runes. Longer renderings
// are cut and end in "...". A nil value renders as "null".
func Abbreviate(v any, maxLen int) string {
	var s string
	switch x := v.(type) {
	case nil:
		s = "null"
	case string:
		s = x
	case fmt.Stringer:
		s = x.String()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		s = fmt.Sprint(x)
	default:
		s = printer.Sprint(x)
	}
	return Truncate(s, maxLen)
}

// Truncate cuts s to at most maxLen runes, marking the cut with "...".
func Truncate(s string, maxLen int) string {
	if maxLen < 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

package pkgver

import (
	"regexp"
	"strings"
)

var componentPattern = regexp.MustCompile(`\d+|[a-z]+|\.`)

// component is one piece of a split version: either a number or text.
type component struct {
	numeric bool
	text    string
}

// split breaks a version into components. Runs of digits and runs of lowercase
// letters become their own components; text between them is kept; dots and
// empty pieces are dropped.
func split(v string) []component {
	var parts []component
	add := func(s string) {
		if s == "" || s == "." {
			return
		}
		parts = append(parts, component{numeric: isDigits(s), text: s})
	}

	last := 0
	for _, loc := range componentPattern.FindAllStringIndex(v, -1) {
		add(v[last:loc[0]])
		add(v[loc[0]:loc[1]])
		last = loc[1]
	}
	add(v[last:])
	return parts
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Compare orders two version strings, returning -1, 0 or +1.
func Compare(a, b string) int {
	pa, pb := split(a), split(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := compareComponent(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}

func compareComponent(a, b component) int {
	switch {
	case a.numeric && b.numeric:
		return compareNumbers(a.text, b.text)
	case a.numeric:
		return -1
	case b.numeric:
		return 1
	}
	return strings.Compare(a.text, b.text)
}

// compareNumbers compares digit strings of any length by value.
func compareNumbers(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

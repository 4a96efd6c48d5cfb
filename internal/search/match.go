// Package search locates objects on the server: shell-style wildcard matching,
// search-term resolution, and scanning containers for references to objects.
package search

import (
	"regexp"
	"strings"
)

// Wildcards are the characters that turn a search term into a wildcard search.
const Wildcards = "*?[]"

// Named is anything with a server id and a name.
type Named interface {
	ID() int
	Name() string
}

// IsWildcard reports whether term should be matched as a pattern rather than looked up exactly.
func IsWildcard(term string) bool {
	return strings.ContainsAny(term, Wildcards)
}

// Match returns the objects whose names match a Unix shell-style pattern:
//
//	*       matches everything, including the empty string
//	?       matches any single character
//	[seq]   matches any character in seq
//	[!seq]  matches any character not in seq
//
// A wildcard character is matched literally by wrapping it in brackets, e.g. "[?]".
// With caseSensitive false, names are uppercased before comparison; the pattern is
// used as given. Results keep input order and are not deduplicated. An empty or
// malformed pattern matches nothing.
func Match[T Named](objects []T, pattern string, caseSensitive bool) []T {
	if pattern == "" {
		return nil
	}
	re, err := compile(pattern)
	if err != nil {
		return nil
	}

	var results []T
	for _, obj := range objects {
		name := obj.Name()
		if !caseSensitive {
			name = strings.ToUpper(name)
		}
		if re.MatchString(name) {
			results = append(results, obj)
		}
	}
	return results
}

// compile translates a shell pattern into an anchored regular expression. Unlike
// path.Match, "*" and "?" also match "/" and a backslash has no special meaning.
func compile(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString(`^(?s:`)

	runes := []rune(pattern)
	n := len(runes)
	for i := 0; i < n; {
		c := runes[i]
		i++
		switch c {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		case '[':
			j := i
			if j < n && runes[j] == '!' {
				j++
			}
			if j < n && runes[j] == ']' {
				j++
			}
			for j < n && runes[j] != ']' {
				j++
			}
			if j >= n {
				// No closing bracket: the "[" is literal.
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(translateSet(runes[i:j]))
			i = j + 1
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	b.WriteString(`)$`)
	return regexp.Compile(b.String())
}

// translateSet converts the inside of a bracket expression to a regexp class.
func translateSet(set []rune) string {
	var b strings.Builder
	b.WriteByte('[')
	if len(set) > 0 && set[0] == '!' {
		b.WriteByte('^')
		set = set[1:]
	}
	for k, r := range set {
		switch {
		case r == '\\', r == '[', r == '^' && k == 0, r == ']':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(']')
	return b.String()
}

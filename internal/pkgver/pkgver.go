// Package pkgver parses product names and versions out of package file names
// such as "Nethack-3.4.3.pkg" and orders them.
//
// Versions are compared loosely: a version is split into runs of digits and runs
// of lowercase letters, with dots dropped and anything else kept as-is. Numeric
// runs compare as numbers, other runs compare lexically, and a number always
// sorts before text. A version that is a prefix of another sorts first.
package pkgver

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// ErrUpdateName is returned when a policy name cannot be rewritten because one of
// the package names does not parse.
var ErrUpdateName = errors.New("unable to update policy name")

// packagePattern: basename of word, space or hyphen characters, then one
// separator, then a version starting with a digit, then the extension.
var packagePattern = regexp.MustCompile(
	`^(?P<basename>[\w\s\-]+)[\s\-_](?P<version>\d+[\w.\-]*)(?P<extension>\.(pkg(\.zip)?|dmg))$`)

// Identity is what a package's display name says about its contents.
type Identity struct {
	Basename  string
	Version   string
	Extension string
}

// Parse extracts the identity from a package name. The second return value is
// false when the name does not follow the basename-version.ext convention.
func Parse(name string) (Identity, bool) {
	m := packagePattern.FindStringSubmatch(name)
	if m == nil {
		return Identity{}, false
	}
	return Identity{
		Basename:  m[packagePattern.SubexpIndex("basename")],
		Version:   m[packagePattern.SubexpIndex("version")],
		Extension: m[packagePattern.SubexpIndex("extension")],
	}, true
}

// Newest returns the package name carrying the greatest version. Names that do
// not parse are ignored. When several names carry equal versions, the lexically
// greatest name wins. It returns false when no name parses.
func Newest(names []string) (string, bool) {
	var (
		best    string
		bestVer string
		found   bool
	)
	for _, name := range names {
		id, ok := Parse(name)
		if !ok {
			continue
		}
		if !found {
			best, bestVer, found = name, id.Version, true
			continue
		}
		switch c := Compare(id.Version, bestVer); {
		case c > 0, c == 0 && name > best:
			best, bestVer = name, id.Version
		}
	}
	return best, found
}

// GroupMultiVersion maps each basename that appears in two or more parseable
// package names to the versions found for it.
func GroupMultiVersion(names []string) map[string][]string {
	all := make(map[string][]string)
	for _, name := range names {
		if id, ok := Parse(name); ok {
			all[id.Basename] = append(all[id.Basename], id.Version)
		}
	}

	multiples := make(map[string][]string)
	for basename, versions := range all {
		if len(versions) > 1 {
			multiples[basename] = versions
		}
	}
	return multiples
}

// IsPolicyUpdatable reports whether any installed package has a strictly newer
// version among groups, as built by GroupMultiVersion.
func IsPolicyUpdatable(installed []string, groups map[string][]string) bool {
	for _, name := range installed {
		id, ok := Parse(name)
		if !ok {
			continue
		}
		for _, v := range groups[id.Basename] {
			if Compare(id.Version, v) < 0 {
				return true
			}
		}
	}
	return false
}

// UpdateName rewrites a policy name for a package swap: every occurrence of the
// current basename becomes the new basename, then every occurrence of the current
// version becomes the new version. It returns ErrUpdateName, and name unchanged,
// when either package name does not parse.
func UpdateName(name, currentPkg, newPkg string) (string, error) {
	cur, ok := Parse(currentPkg)
	if !ok {
		return name, ErrUpdateName
	}
	next, ok := Parse(newPkg)
	if !ok {
		return name, ErrUpdateName
	}
	updated := strings.ReplaceAll(name, cur.Basename, next.Basename)
	return strings.ReplaceAll(updated, cur.Version, next.Version), nil
}

// SortPackages orders package names by uppercased basename, then by version.
// Names that do not parse are dropped.
func SortPackages(names []string) []string {
	type entry struct {
		name     string
		basename string
		version  string
	}
	var entries []entry
	for _, name := range names {
		if id, ok := Parse(name); ok {
			entries = append(entries, entry{name, strings.ToUpper(id.Basename), id.Version})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].basename != entries[j].basename {
			return entries[i].basename < entries[j].basename
		}
		return Compare(entries[i].version, entries[j].version) < 0
	})

	sorted := make([]string, 0, len(entries))
	for _, e := range entries {
		sorted = append(sorted, e.name)
	}
	return sorted
}

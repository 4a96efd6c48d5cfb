package archive

import (
	"path/filepath"
	"strings"

	"github.com/jssimporter/jss-helper/internal/pkgver"
)

// Package is a package found in an archive, either the archive itself or a
// top-level entry, with the identity its name parses to.
type Package struct {
	Name     string
	Identity pkgver.Identity
}

// Inspection summarizes an archive for upload.
//   - Archive: the package identity of the archive's own file name, if any.
//   - Packages: top-level entries whose names parse as packages.
//   - Entries: every entry.
type Inspection struct {
	Path     string
	Archive  *Package
	Packages []Package
	Entries  []Entry
}

// Inspect lists src and parses package identities from its name and its
// top-level entries. A "Foo-1.0.pkg/" bundle directory counts once.
func Inspect(src string) (*Inspection, error) {
	entries, err := List(src)
	if err != nil {
		return nil, err
	}

	in := &Inspection{Path: src, Entries: entries}
	base := filepath.Base(src)
	if id, ok := pkgver.Parse(base); ok {
		in.Archive = &Package{Name: base, Identity: id}
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		top := topLevel(e.Name)
		if top == "" || seen[top] {
			continue
		}
		seen[top] = true
		if id, ok := pkgver.Parse(top); ok {
			in.Packages = append(in.Packages, Package{Name: top, Identity: id})
		}
	}
	return in, nil
}

// topLevel returns the first path component of an archive entry name.
func topLevel(name string) string {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	top, _, _ := strings.Cut(name, "/")
	return top
}

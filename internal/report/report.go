// Package report renders search results as plain text for the console.
package report

import (
	"fmt"
	"strconv"
	"strings"
)

// NoResults is the body printed for an empty result set.
const NoResults = "No results found."

// Row is one line of a result table.
type Row interface {
	ID() int
	Name() string
}

// Format renders results as a table of ids and names under an optional heading:
//
//	Policies scoped to Lab Macs
//	ID:   1	NAME: Install Nethack-3.4.3
//	ID:  12	NAME: Install Firefox-52.0
//
// Ids are right-aligned to the widest id in results. The output always ends in
// a newline.
func Format[T Row](heading string, results []T) string {
	var b strings.Builder
	writeHeading(&b, heading)

	if len(results) == 0 {
		b.WriteString(NoResults)
		b.WriteByte('\n')
		return b.String()
	}

	width := 0
	for _, r := range results {
		width = max(width, len(strconv.Itoa(r.ID())))
	}
	for _, r := range results {
		fmt.Fprintf(&b, "ID:  %*d\tNAME: %s\n", width, r.ID(), r.Name())
	}
	return b.String()
}

// FormatObject renders a single object by its full string form.
func FormatObject(heading string, obj fmt.Stringer) string {
	var b strings.Builder
	writeHeading(&b, heading)
	b.WriteString(obj.String())
	b.WriteByte('\n')
	return b.String()
}

func writeHeading(b *strings.Builder, heading string) {
	if heading == "" {
		return
	}
	b.WriteString(heading)
	if !strings.HasSuffix(heading, "\n") {
		b.WriteByte('\n')
	}
}

package actions

import (
	"fmt"
	"text/tabwriter"

	"github.com/jssimporter/jss-helper/internal/archive"
	"github.com/jssimporter/jss-helper/internal/report"
)

// Inspect prints the packages and entries found in a local archive.
func (r *Runner) Inspect(path string) error {
	in, err := archive.Inspect(path)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	if in.Archive != nil {
		r.printf("Archive: %s\tBASENAME: %s\tVERSION: %s\n",
			in.Archive.Name, in.Archive.Identity.Basename, in.Archive.Identity.Version)
	} else {
		r.printf("Archive: %s\t(name does not carry a package version)\n", in.Path)
	}

	r.print("Packages:")
	if len(in.Packages) == 0 {
		r.print(report.NoResults)
	}
	for _, p := range in.Packages {
		r.printf("  %s\tBASENAME: %s\tVERSION: %s\n", p.Name, p.Identity.Basename, p.Identity.Version)
	}

	r.print("Entries:")
	w := tabwriter.NewWriter(r.Out, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, e := range in.Entries {
		if e.Dir {
			fmt.Fprintf(w, "dir\t  %s\n", e.Name)
			continue
		}
		fmt.Fprintf(w, "%d\t  %s\n", e.Size, e.Name)
	}
	return w.Flush()
}

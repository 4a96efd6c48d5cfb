package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/jssimporter/jss-helper/internal/jss"
	"github.com/jssimporter/jss-helper/internal/report"
	"github.com/jssimporter/jss-helper/internal/search"
)

// Installs prints the policies and imaging configurations that install any
// package matching term.
func (r *Runner) Installs(ctx context.Context, term string) error {
	packages, err := search.Resolve(ctx, r.Client, jss.Package, term)
	if err != nil {
		return fmt.Errorf("failed to search packages: %w", err)
	}

	sections := []struct {
		kind    jss.Kind
		heading string
	}{
		{jss.Policy, "Policies which install '%s'"},
		{jss.ComputerConfiguration, "Imaging configs which install '%s'"},
	}
	var parts []string
	for _, s := range sections {
		containers, err := r.Client.GetAll(ctx, s.kind)
		if err != nil {
			return fmt.Errorf("failed to retrieve %s objects: %w", s.kind, err)
		}
		found := search.Unique(search.Scan(packages, s.kind.Packages().Packages, containers))
		parts = append(parts, report.Format(fmt.Sprintf(s.heading, term), found))
	}
	r.print(strings.Join(parts, "\n"))
	return nil
}

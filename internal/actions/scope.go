package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jssimporter/jss-helper/internal/jss"
	"github.com/jssimporter/jss-helper/internal/logger"
	"github.com/jssimporter/jss-helper/internal/report"
	"github.com/jssimporter/jss-helper/internal/search"
)

// scopeSection is one container kind in a scope report.
type scopeSection struct {
	kind       jss.Kind
	scoped     string
	scopedAll  string
	exclusions string
}

var scopeSections = map[jss.Kind][]scopeSection{
	jss.ComputerGroup: {
		{
			kind:       jss.Policy,
			scoped:     "Policies scoped to %s",
			scopedAll:  "Policies scoped to all computers",
			exclusions: "Policies",
		},
		{
			kind:       jss.OSXConfigurationProfile,
			scoped:     "Configuration profiles scoped to %s",
			scopedAll:  "Configuration profiles scoped to all computers",
			exclusions: "Configuration Profiles",
		},
	},
	jss.MobileDeviceGroup: {
		{
			kind:       jss.MobileDeviceConfigurationProfile,
			scoped:     "Profiles scoped to %s",
			scopedAll:  "Profiles scoped to all mobile devices",
			exclusions: "Mobile Device Configuration Profiles",
		},
	},
}

func sectionsFor(groupKind jss.Kind) ([]scopeSection, error) {
	sections, ok := scopeSections[groupKind]
	if !ok {
		return nil, fmt.Errorf("%s objects are not scope groups", groupKind)
	}
	return sections, nil
}

// getGroup fetches a single group by id or name.
func (r *Runner) getGroup(ctx context.Context, kind jss.Kind, key string) (*jss.Object, error) {
	group, err := r.Client.Get(ctx, kind, key)
	if errors.Is(err, jss.ErrNotFound) {
		return nil, notFound("Group not found.")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get %s %q: %w", kind, key, err)
	}
	return group, nil
}

// ScopeReport builds the report of everything scoped to a group, plus everything
// scoped to all devices of the group's type.
func (r *Runner) ScopeReport(ctx context.Context, groupKind jss.Kind, key string) (string, error) {
	sections, err := sectionsFor(groupKind)
	if err != nil {
		return "", err
	}
	group, err := r.getGroup(ctx, groupKind, key)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, s := range sections {
		logger.Debug("[DEBUG] Retrieving all %s objects\n", s.kind)
		containers, err := r.Client.GetAll(ctx, s.kind)
		if err != nil {
			return "", fmt.Errorf("failed to retrieve %s objects: %w", s.kind, err)
		}
		scoped := search.ScopedToGroups(s.kind, []*jss.Object{group}, containers)
		parts = append(parts,
			report.Format(fmt.Sprintf(s.scoped, group.Name()), scoped),
			report.Format(s.scopedAll, search.ScopedToAll(containers)))
	}
	return strings.Join(parts, "\n"), nil
}

// Scoped prints the scope report for a group.
func (r *Runner) Scoped(ctx context.Context, groupKind jss.Kind, key string) error {
	out, err := r.ScopeReport(ctx, groupKind, key)
	if err != nil {
		return err
	}
	r.print(out)
	return nil
}

// ScopeDiff prints the scope reports of two groups side by side.
func (r *Runner) ScopeDiff(ctx context.Context, groupKind jss.Kind, first, second string) error {
	left, err := r.ScopeReport(ctx, groupKind, first)
	if err != nil {
		return err
	}
	right, err := r.ScopeReport(ctx, groupKind, second)
	if err != nil {
		return err
	}
	out, err := r.Differ.Diff(ctx, left, right)
	if err != nil {
		return fmt.Errorf("failed to diff scope reports: %w", err)
	}
	r.print(out)
	return nil
}

// Excluded prints, per container kind, the containers that exclude a group from scope.
func (r *Runner) Excluded(ctx context.Context, groupKind jss.Kind, key string) error {
	sections, err := sectionsFor(groupKind)
	if err != nil {
		return err
	}
	group, err := r.getGroup(ctx, groupKind, key)
	if err != nil {
		return err
	}

	for _, s := range sections {
		containers, err := r.Client.GetAll(ctx, s.kind)
		if err != nil {
			return fmt.Errorf("failed to retrieve %s objects: %w", s.kind, err)
		}
		excluded := search.ExcludingGroups(s.kind, []*jss.Object{group}, containers)
		heading := fmt.Sprintf("%s with %s excluded from scope.", s.exclusions, group.Name())
		r.print(report.Format(heading, excluded))
	}
	return nil
}

// BatchScope scopes every policy matching policyTerms to every computer group
// matching groupTerm, saving each policy.
func (r *Runner) BatchScope(ctx context.Context, groupTerm string, policyTerms []string) error {
	groups, err := search.Resolve(ctx, r.Client, jss.ComputerGroup, groupTerm)
	if err != nil {
		return fmt.Errorf("failed to search computer groups: %w", err)
	}
	if len(groups) == 0 {
		return notFound("Group not found.")
	}

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name())
	}
	r.printf("Scoping to groups: %s\n", strings.Join(names, ", "))
	r.print(strings.Repeat("-", 79))

	for _, term := range policyTerms {
		policies, err := search.Resolve(ctx, r.Client, jss.Policy, term)
		if err != nil {
			return fmt.Errorf("failed to search policies for %q: %w", term, err)
		}
		if len(policies) == 0 {
			logger.Warn("[WARN] No policy matches %q\n", term)
		}
		for _, policy := range policies {
			for _, g := range groups {
				if err := policy.AddToScope(g); err != nil {
					return err
				}
			}
			if err := r.Client.Save(ctx, policy); err != nil {
				return fmt.Errorf("failed to save policy %q: %w", policy.Name(), err)
			}
			r.printf("%s: Success.\n", policy.Name())
		}
	}
	return nil
}

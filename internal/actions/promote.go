package actions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jssimporter/jss-helper/internal/jss"
	"github.com/jssimporter/jss-helper/internal/logger"
	"github.com/jssimporter/jss-helper/internal/pkgver"
	"github.com/jssimporter/jss-helper/internal/prompt"
)

// Frequency of policies that run every time they are triggered.
const ongoing = "Ongoing"

var policyTriggers = []string{
	"trigger_checkin",
	"trigger_enrollment_complete",
	"trigger_login",
	"trigger_logout",
	"trigger_network_state_changed",
	"trigger_startup",
	"trigger_other",
}

// PromoteOptions selects the policy and package for Promote. Empty fields are
// asked for interactively.
type PromoteOptions struct {
	Policy     string
	Package    string
	UpdateName bool
}

// Promote replaces the package a policy installs with another package, usually
// a newer version of the same product.
func (r *Runner) Promote(ctx context.Context, opts PromoteOptions) error {
	var policy *jss.Object
	if opts.Policy == "" {
		chosen, err := r.choosePolicy(ctx)
		if err != nil {
			return err
		}
		policy = chosen
	} else {
		fetched, err := r.Client.Get(ctx, jss.Policy, opts.Policy)
		if errors.Is(err, jss.ErrNotFound) {
			return notFound("Object: %s does not exist!", opts.Policy)
		} else if err != nil {
			return fmt.Errorf("failed to get policy %q: %w", opts.Policy, err)
		}
		policy = fetched
	}

	current := ""
	if names := policy.PackageNames(); len(names) > 0 {
		current = names[0]
	}

	pkgKey := opts.Package
	if pkgKey == "" {
		name, err := r.choosePackage(ctx, current)
		if err != nil {
			return err
		}
		pkgKey = name
	}
	pkg, err := r.Client.Get(ctx, jss.Package, pkgKey)
	if errors.Is(err, jss.ErrNotFound) {
		return notFound("Object: %s does not exist!", pkgKey)
	} else if err != nil {
		return fmt.Errorf("failed to get package %q: %w", pkgKey, err)
	}

	if err := policy.ReplacePackage(current, pkg); err != nil {
		return err
	}

	if opts.UpdateName {
		r.updateName(policy, current, pkg.Name())
	}

	if err := r.Client.Save(ctx, policy); err != nil {
		return fmt.Errorf("failed to save policy %q: %w", policy.Name(), err)
	}
	logger.Info("[INFO] Policy %q now installs %s\n", policy.Name(), pkg.Name())

	r.LogWarning(ctx, policy)
	return nil
}

func (r *Runner) updateName(policy *jss.Object, current, next string) {
	name, err := pkgver.UpdateName(policy.Name(), current, next)
	if err == nil {
		r.printf("Old name: %s\n", policy.Name())
		r.printf("New name: %s\n", name)
		err = policy.SetName(name)
	}
	if err != nil {
		logger.Debug("[DEBUG] Name update failed: %v\n", err)
		r.print("Unable to update policy name!")
	}
}

// choosePolicy offers the policies with newer packages available, expandable
// to every policy that installs a package, and returns the full policy chosen.
func (r *Runner) choosePolicy(ctx context.Context) (*jss.Object, error) {
	logger.Info("[INFO] No policy specified: building a list of policies which have newer packages available...\n")
	logger.Info("[INFO] Retrieving all policies. Please wait...\n")
	policies, err := r.Client.GetAll(ctx, jss.Policy)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve policies: %w", err)
	}
	packages, err := r.packageNames(ctx)
	if err != nil {
		return nil, err
	}

	var installing []string
	for _, p := range policies {
		size, _ := strconv.Atoi(p.FindText(jss.Policy.Packages().List + "/size"))
		if size > 0 {
			installing = append(installing, p.Name())
		}
	}

	name, err := r.Chooser.Choose(ctx, prompt.Menu{
		Options:  UpdatablePolicies(policies, packages),
		Expanded: installing,
	})
	if err != nil {
		return nil, err
	}
	for _, p := range policies {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, notFound("Object: %s does not exist!", name)
}

// choosePackage offers the packages of the same product as current, sorted by
// version, expandable to every package. The newest is the default.
func (r *Runner) choosePackage(ctx context.Context, current string) (string, error) {
	all, err := r.packageNames(ctx)
	if err != nil {
		return "", err
	}

	var matching []string
	if id, ok := pkgver.Parse(current); ok {
		basename := strings.ToUpper(id.Basename)
		for _, name := range all {
			if strings.Contains(strings.ToUpper(name), basename) {
				matching = append(matching, name)
			}
		}
	}

	var flags []prompt.Flag
	if current != "" {
		flags = append(flags, prompt.Flag{
			Label: prompt.Current,
			Match: func(s string) bool { return strings.Contains(s, current) },
		})
	}
	if newest, ok := pkgver.Newest(matching); ok {
		flags = append(flags, prompt.Flag{
			Label: prompt.Default,
			Match: func(s string) bool { return strings.Contains(s, newest) },
		})
	}

	return r.Chooser.Choose(ctx, prompt.Menu{
		Options:  pkgver.SortPackages(matching),
		Expanded: pkgver.SortPackages(all),
		Flags:    flags,
	})
}

func (r *Runner) packageNames(ctx context.Context) ([]string, error) {
	packages, err := r.Client.List(ctx, jss.Package)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	names := make([]string, 0, len(packages))
	for _, p := range packages {
		names = append(names, p.Name())
	}
	return names, nil
}

// UpdatablePolicies returns the names of policies installing a package for
// which a newer version exists among packages.
func UpdatablePolicies(policies []*jss.Object, packages []string) []string {
	groups := pkgver.GroupMultiVersion(packages)
	var names []string
	for _, p := range policies {
		if pkgver.IsPolicyUpdatable(p.PackageNames(), groups) {
			names = append(names, p.Name())
		}
	}
	return names
}

// NeedsLogFlush reports whether a policy that runs once per device has a trigger
// set, so devices that already ran it will not run it again until its logs are
// flushed.
func NeedsLogFlush(policy *jss.Object) bool {
	if policy.FindText("general/frequency") == ongoing {
		return false
	}
	for _, trigger := range policyTriggers {
		path := "general/" + trigger
		if policy.Has(path) && policy.FindText(path) != "False" {
			return true
		}
	}
	return false
}

// LogWarning reminds the user to flush a policy's logs when needed and opens the
// log page.
func (r *Runner) LogWarning(ctx context.Context, policy *jss.Object) {
	if !NeedsLogFlush(policy) {
		return
	}
	r.print("Remember to flush the policy logs!")
	url := fmt.Sprintf("%s/policies.html?id=%d&o=l", r.Client.URL(), policy.ID())
	if r.Browser == nil {
		return
	}
	if err := r.Browser.Open(ctx, url); err != nil {
		logger.Warn("[WARN] Could not open %s: %v\n", url, err)
	}
}

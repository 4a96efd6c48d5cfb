package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jssimporter/jss-helper/internal/jss"
	"github.com/jssimporter/jss-helper/internal/logger"
	"github.com/jssimporter/jss-helper/internal/report"
	"github.com/jssimporter/jss-helper/internal/search"
)

// Search prints the objects of kind matching term: a table for many, the full
// XML for one. An empty term lists every object of kind.
func (r *Runner) Search(ctx context.Context, kind jss.Kind, term string) error {
	results, err := search.Resolve(ctx, r.Client, kind, term)
	if err != nil {
		return fmt.Errorf("failed to search %s objects: %w", kind, err)
	}

	switch len(results) {
	case 0:
		return notFound("Object: %s does not exist!", term)
	case 1:
		r.print(report.FormatObject("", results[0]))
	default:
		r.print(report.Format("", results))
	}
	return nil
}

// GroupOptions describes a static group search or membership change.
//   - Kind: ComputerGroup or MobileDeviceGroup.
//   - Group: id or name of the group.
//   - Add/Remove: device searches, wildcards allowed.
//   - DryRun: print the modified group instead of saving it.
type GroupOptions struct {
	Kind   jss.Kind
	Group  string
	Add    []string
	Remove []string
	DryRun bool
}

// Group searches for groups, or adds and removes static members when
// opts.Add or opts.Remove is set.
func (r *Runner) Group(ctx context.Context, opts GroupOptions) error {
	modify := len(opts.Add) > 0 || len(opts.Remove) > 0
	if !modify {
		return r.Search(ctx, opts.Kind, opts.Group)
	}
	if opts.Group == "" {
		return &UsageError{Message: "Please provide a group to add or remove from."}
	}

	members := opts.Kind.Members()
	if members == nil {
		return fmt.Errorf("%s objects have no static members", opts.Kind)
	}

	group, err := r.Client.Get(ctx, opts.Kind, opts.Group)
	if errors.Is(err, jss.ErrNotFound) {
		return notFound("Group not found.")
	} else if err != nil {
		return fmt.Errorf("failed to get %s %q: %w", opts.Kind, opts.Group, err)
	}

	add, err := r.resolveAll(ctx, members.MemberKind, opts.Add)
	if err != nil {
		return err
	}
	for _, device := range add {
		r.printf("Adding %s to %s\n", device.Name(), group.Name())
		if err := group.AddMember(device); err != nil {
			return err
		}
	}

	remove, err := r.resolveAll(ctx, members.MemberKind, opts.Remove)
	if err != nil {
		return err
	}
	for _, device := range remove {
		r.printf("Removing %s from %s\n", device.Name(), group.Name())
		err := group.RemoveMember(device)
		if errors.Is(err, jss.ErrNotMember) {
			r.printf("%s is not a member; not removing.\n", device.Name())
			continue
		} else if err != nil {
			return err
		}
	}

	if opts.DryRun {
		r.print(group)
		return nil
	}
	if err := r.Client.Save(ctx, group); err != nil {
		return fmt.Errorf("failed to save %s %q: %w", opts.Kind, group.Name(), err)
	}
	logger.Info("[INFO] Saved %s %q\n", opts.Kind, group.Name())
	return nil
}

// resolveAll concatenates the results of several searches.
func (r *Runner) resolveAll(ctx context.Context, kind jss.Kind, terms []string) ([]*jss.Object, error) {
	var all []*jss.Object
	for _, term := range terms {
		found, err := search.Resolve(ctx, r.Client, kind, term)
		if err != nil {
			return nil, fmt.Errorf("failed to search %s objects for %q: %w", kind, term, err)
		}
		if len(found) == 0 {
			logger.Warn("[WARN] No %s matches %q\n", kind, term)
		}
		all = append(all, found...)
	}
	return all, nil
}

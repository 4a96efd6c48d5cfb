package search

import (
	"strconv"

	"github.com/jssimporter/jss-helper/internal/jss"
)

// Container is an object that references other objects by id and name.
type Container interface {
	Named
	References(path string) []jss.Reference
}

// Scopable is a container whose kind determines its scope layout.
type Scopable interface {
	Kind() jss.Kind
	FindText(path string) string
}

// Scan returns the containers holding, at path, a reference to any of targets.
// A reference matches when its id equals a target's id or its name equals a
// target's name; empty values and zero ids never match. A container is appended once per
// matching reference, so callers wanting a set should pass the result to Unique.
// Order follows containers.
func Scan[C Container, T Named](targets []T, path string, containers []C) []C {
	ids := make(map[string]struct{}, len(targets))
	names := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		if t.ID() != 0 {
			ids[strconv.Itoa(t.ID())] = struct{}{}
		}
		if t.Name() != "" {
			names[t.Name()] = struct{}{}
		}
	}

	var results []C
	for _, c := range containers {
		for _, ref := range c.References(path) {
			_, idMatch := ids[ref.ID]
			_, nameMatch := names[ref.Name]
			if (ref.ID != "" && idMatch) || (ref.Name != "" && nameMatch) {
				results = append(results, c)
			}
		}
	}
	return results
}

// ScopedToGroups returns the containers of kind that scope any of groups.
func ScopedToGroups[C Container, T Named](kind jss.Kind, groups []T, containers []C) []C {
	scope := kind.Scope()
	if scope == nil {
		return nil
	}
	return Scan(groups, scope.Groups, containers)
}

// ExcludingGroups returns the containers of kind that exclude any of groups from scope.
func ExcludingGroups[C Container, T Named](kind jss.Kind, groups []T, containers []C) []C {
	scope := kind.Scope()
	if scope == nil {
		return nil
	}
	return Scan(groups, scope.Exclusions, containers)
}

// ScopedToAll returns the containers whose all-devices flag is exactly "true".
// Containers of kinds without a scope are never included.
func ScopedToAll[C Scopable](containers []C) []C {
	var results []C
	for _, c := range containers {
		scope := c.Kind().Scope()
		if scope == nil {
			continue
		}
		if c.FindText(scope.AllDevices) == "true" {
			results = append(results, c)
		}
	}
	return results
}

// Unique drops repeated objects by id, keeping the first occurrence.
func Unique[T Named](objects []T) []T {
	seen := make(map[int]struct{}, len(objects))
	var results []T
	for _, obj := range objects {
		if _, ok := seen[obj.ID()]; ok {
			continue
		}
		seen[obj.ID()] = struct{}{}
		results = append(results, obj)
	}
	return results
}

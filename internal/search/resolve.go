package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jssimporter/jss-helper/internal/jss"
	"github.com/jssimporter/jss-helper/internal/logger"
)

// Source is the part of the API client that search terms are resolved against.
type Source interface {
	List(ctx context.Context, kind jss.Kind) ([]*jss.Object, error)
	Get(ctx context.Context, kind jss.Kind, key string) (*jss.Object, error)
}

// Resolve turns a user-supplied search term into zero or more full objects.
//
//   - An empty term returns the list-level records of every object of kind.
//   - A wildcard term lists kind, matches names case-sensitively and fetches
//     each match by the id its list record carries, so a name made of digits
//     is never taken for an id. Matches that vanish before the fetch are skipped.
//   - Anything else is an exact lookup; an all-digit term is an id. A missing
//     object yields an empty result, not an error.
//
// Transport and server errors are returned.
func Resolve(ctx context.Context, src Source, kind jss.Kind, term string) ([]*jss.Object, error) {
	if term == "" {
		objects, err := src.List(ctx, kind)
		if errors.Is(err, jss.ErrNotFound) {
			return nil, nil
		}
		return objects, err
	}

	if !IsWildcard(term) {
		obj, err := src.Get(ctx, kind, term)
		switch {
		case errors.Is(err, jss.ErrNotFound):
			return nil, nil
		case err != nil:
			return nil, err
		}
		return []*jss.Object{obj}, nil
	}

	all, err := src.List(ctx, kind)
	if errors.Is(err, jss.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("listing %s objects: %w", kind, err)
	}

	var results []*jss.Object
	for _, match := range Match(all, term, true) {
		obj, err := src.Get(ctx, kind, fetchKey(match))
		if errors.Is(err, jss.ErrNotFound) {
			logger.Debug("[DEBUG] %s %q disappeared before it could be fetched\n", kind, match.Name())
			continue
		} else if err != nil {
			return nil, err
		}
		results = append(results, obj)
	}
	return results, nil
}

// fetchKey is the key a listed object is fetched by: its id, or its name when
// the list record has no id.
func fetchKey(obj *jss.Object) string {
	if id := obj.ID(); id > 0 {
		return strconv.Itoa(id)
	}
	return obj.Name()
}

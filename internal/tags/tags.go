// Package tags maps tag names given on the command line to remote tags,
// creating the ones that do not exist yet.
package tags

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tiliavir/myhours-cli/internal/model"
)

// API is the subset of the remote client needed to resolve tags.
type API interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
	CreateTag(ctx context.Context, name, hexColor string) (model.Tag, error)
}

// Resolver resolves tag names against the remote tag list.
type Resolver struct {
	api      API
	hexColor string
}

// NewResolver creates tags with hexColor when they are missing.
func NewResolver(api API, hexColor string) *Resolver {
	return &Resolver{api: api, hexColor: hexColor}
}

// Resolve fetches all non-archived tags once and matches names exactly and
// case-sensitively. The result lists the matched tags in input order,
// followed by the newly created tags in the order their names were seen.
// Two processes creating the same name at once may both create it.
func (r *Resolver) Resolve(ctx context.Context, names []string) ([]model.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	existing, err := r.api.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	byName := make(map[string]model.Tag, len(existing))
	for _, t := range existing {
		if _, dup := byName[t.Name]; !dup {
			byName[t.Name] = t
		}
	}

	var matched []model.Tag
	var missing []string
	for _, name := range names {
		if t, ok := byName[name]; ok {
			matched = append(matched, t)
			continue
		}
		missing = append(missing, name)
	}

	created := map[string]model.Tag{}
	for _, name := range missing {
		t, ok := created[name]
		if !ok {
			t, err = r.api.CreateTag(ctx, name, r.hexColor)
			if err != nil {
				return nil, fmt.Errorf("creating tag %q: %w", name, err)
			}
			created[name] = t
		}
		matched = append(matched, t)
	}
	return matched, nil
}

// ParseList splits a comma separated list of tag names, trimming spaces and
// dropping empty items.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

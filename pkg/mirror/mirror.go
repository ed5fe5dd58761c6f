package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

// Index is a keyed document store with free-text search. FindByID returns
// store.ErrNotFound for a missing identity; Delete of a missing identity is
// not an error.
type Index[D any] interface {
	Save(ctx context.Context, id int64, doc D) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (D, error)
	Search(ctx context.Context, query string, page store.PageRequest) (store.Page[D], error)
	// IDs lists every indexed identity in ascending order.
	IDs(ctx context.Context) ([]int64, error)
}

// Pinger is implemented by indexes backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Terms splits a query into lower-cased terms. It returns nil for a query
// that matches everything.
func Terms(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" || query == "*" {
		return nil
	}
	return strings.Fields(strings.ToLower(query))
}

// Text returns the searchable text of a document: every scalar field value
// of its JSON form, lower-cased and separated by spaces. Field names are not
// included.
func Text(doc any) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("decoding document: %w", err)
	}

	var parts []string
	flatten(v, &parts)
	return strings.ToLower(strings.Join(parts, " ")), nil
}

func flatten(v any, parts *[]string) {
	switch x := v.(type) {
	case nil:
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flatten(x[k], parts)
		}
	case []any:
		for _, e := range x {
			flatten(e, parts)
		}
	case string:
		*parts = append(*parts, x)
	default:
		*parts = append(*parts, fmt.Sprint(x))
	}
}

// Matches reports whether text contains every term.
func Matches(text string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

// Nop is an Index that drops writes and finds nothing.
type Nop[D any] struct{}

func (Nop[D]) Save(context.Context, int64, D) error { return nil }

func (Nop[D]) Delete(context.Context, int64) error { return nil }

func (Nop[D]) Exists(context.Context, int64) (bool, error) { return false, nil }

func (Nop[D]) FindByID(context.Context, int64) (D, error) {
	var zero D
	return zero, store.ErrNotFound
}

func (Nop[D]) Search(_ context.Context, _ string, page store.PageRequest) (store.Page[D], error) {
	return store.NewPage[D](nil, 0, page), nil
}

func (Nop[D]) IDs(context.Context) ([]int64, error) { return nil, nil }

// Package memory provides an in-process mirror.Index.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/mirror"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

type entry[D any] struct {
	doc  D
	text string
}

// Index keeps documents in a map together with their searchable text.
type Index[D any] struct {
	mu   sync.RWMutex
	docs map[int64]entry[D]
}

// NewIndex creates an empty Index
func NewIndex[D any]() *Index[D] {
	return &Index[D]{docs: map[int64]entry[D]{}}
}

func (ix *Index[D]) Save(_ context.Context, id int64, doc D) error {
	text, err := mirror.Text(doc)
	if err != nil {
		return err
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.docs[id] = entry[D]{doc: doc, text: text}
	return nil
}

func (ix *Index[D]) Delete(_ context.Context, id int64) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.docs, id)
	return nil
}

func (ix *Index[D]) Exists(_ context.Context, id int64) (bool, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	_, ok := ix.docs[id]
	return ok, nil
}

func (ix *Index[D]) FindByID(_ context.Context, id int64) (D, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	e, ok := ix.docs[id]
	if !ok {
		var zero D
		return zero, store.ErrNotFound
	}
	return e.doc, nil
}

func (ix *Index[D]) Search(ctx context.Context, query string, page store.PageRequest) (store.Page[D], error) {
	if err := ctx.Err(); err != nil {
		return store.Page[D]{}, err
	}
	terms := mirror.Terms(query)

	ix.mu.RLock()
	ids := make([]int64, 0, len(ix.docs))
	for id, e := range ix.docs {
		if mirror.Matches(e.text, terms) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	total := int64(len(ids))
	if page.Paged() {
		start := min(page.Offset(), len(ids))
		ids = ids[start:min(start+page.Size, len(ids))]
	}
	content := make([]D, len(ids))
	for i, id := range ids {
		content[i] = ix.docs[id].doc
	}
	ix.mu.RUnlock()

	return store.NewPage(content, total, page), nil
}

func (ix *Index[D]) IDs(_ context.Context) ([]int64, error) {
	ix.mu.RLock()
	ids := make([]int64, 0, len(ix.docs))
	for id := range ix.docs {
		ids = append(ids, id)
	}
	ix.mu.RUnlock()
	slices.Sort(ids)
	return ids, nil
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

// Resolver loads the references of an entity. It returns
// store.ErrInvalidReference when a referenced identity does not exist.
type Resolver[E any] func(ctx context.Context, e E) (E, error)

// Option configures a Repository
type Option[E store.Entity[E]] func(*Repository[E])

// WithResolver sets the function used to validate references on save and to
// load them on read.
func WithResolver[E store.Entity[E]](r Resolver[E]) Option[E] {
	return func(repo *Repository[E]) {
		repo.resolve = r
	}
}

// Repository implements store.Repository in memory. Identities start at 1.
type Repository[E store.Entity[E]] struct {
	mu      sync.RWMutex
	seq     int64
	rows    map[int64]E
	resolve Resolver[E]
}

// NewRepository creates an empty Repository
func NewRepository[E store.Entity[E]](opts ...Option[E]) *Repository[E] {
	r := &Repository[E]{rows: map[int64]E{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the stored entity without loading its references.
func (r *Repository[E]) Get(id int64) (E, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rows[id]
	return e, ok
}

func (r *Repository[E]) Save(ctx context.Context, e E) (E, error) {
	var zero E
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	// references are checked before locking; a resolver may read this repository
	if _, err := r.load(ctx, e); err != nil {
		return zero, err
	}

	r.mu.Lock()
	id := e.GetID()
	if id == 0 {
		r.seq++
		id = r.seq
		e = e.WithID(id)
	} else if _, ok := r.rows[id]; !ok {
		r.mu.Unlock()
		return zero, store.ErrNotFound
	}
	r.rows[id] = e
	r.mu.Unlock()

	return r.load(ctx, e)
}

func (r *Repository[E]) FindByID(ctx context.Context, id int64) (E, error) {
	e, ok := r.Get(id)
	if !ok {
		var zero E
		return zero, store.ErrNotFound
	}
	return r.load(ctx, e)
}

func (r *Repository[E]) FindAll(ctx context.Context, page store.PageRequest) (store.Page[E], error) {
	return r.FindBy(ctx, criteria.Predicate{}, page)
}

func (r *Repository[E]) FindBy(ctx context.Context, p criteria.Predicate, page store.PageRequest) (store.Page[E], error) {
	if err := ctx.Err(); err != nil {
		return store.Page[E]{}, err
	}
	matches := r.match(p)
	sortRows(matches, page.Sort)

	total := int64(len(matches))
	if page.Paged() {
		start := min(page.Offset(), len(matches))
		end := min(start+page.Size, len(matches))
		matches = matches[start:end]
	}

	content := make([]E, 0, len(matches))
	for _, e := range matches {
		loaded, err := r.load(ctx, e)
		if err != nil {
			return store.Page[E]{}, err
		}
		content = append(content, loaded)
	}
	return store.NewPage(content, total, page), nil
}

func (r *Repository[E]) CountBy(ctx context.Context, p criteria.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(r.match(p))), nil
}

func (r *Repository[E]) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.Get(id)
	return ok, nil
}

func (r *Repository[E]) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *Repository[E]) match(p criteria.Predicate) []E {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]E, 0, len(r.rows))
	for _, e := range r.rows {
		if p.Match(e.Values()) {
			out = append(out, e)
		}
	}
	return out
}

func (r *Repository[E]) load(ctx context.Context, e E) (E, error) {
	if r.resolve == nil {
		return e, nil
	}
	return r.resolve(ctx, e)
}

// sortRows orders by the requested columns, then by identity. NULLs sort
// after every value in ascending order, as PostgreSQL does.
func sortRows[E store.Entity[E]](rows []E, orders []store.Order) {
	values := make(map[int64]map[string]any, len(rows))
	for _, e := range rows {
		values[e.GetID()] = e.Values()
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := values[rows[i].GetID()], values[rows[j].GetID()]
		for _, o := range orders {
			n := compareNullsLast(a[o.Column], b[o.Column])
			if n == 0 {
				continue
			}
			if o.Descending {
				return n > 0
			}
			return n < 0
		}
		return rows[i].GetID() < rows[j].GetID()
	})
}

func compareNullsLast(a, b any) int {
	a, b = criteria.Normalize(a), criteria.Normalize(b)
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	n, _ := criteria.Compare(a, b)
	return n
}

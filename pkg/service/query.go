package service

import (
	"context"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

// Criteria is a set of optional field filters. Predicate must accept a nil
// receiver and return the empty predicate for it.
type Criteria interface {
	Predicate() criteria.Predicate
}

// QueryService lists and counts entities matching criteria.
type QueryService[E store.Entity[E], D any, C Criteria] struct {
	repo   store.Repository[E]
	mapper Mapper[E, D]
}

func NewQueryService[E store.Entity[E], D any, C Criteria](repo store.Repository[E], mapper Mapper[E, D]) *QueryService[E, D, C] {
	return &QueryService[E, D, C]{repo: repo, mapper: mapper}
}

// FindByCriteria returns every match ordered by identity.
func (q *QueryService[E, D, C]) FindByCriteria(ctx context.Context, c C) ([]D, error) {
	p, err := q.repo.FindBy(ctx, c.Predicate(), store.Unpaged())
	if err != nil {
		return nil, err
	}
	return store.MapPage(p, q.mapper.ToDTO).Content, nil
}

func (q *QueryService[E, D, C]) FindPageByCriteria(ctx context.Context, c C, page store.PageRequest) (store.Page[D], error) {
	p, err := q.repo.FindBy(ctx, c.Predicate(), page)
	if err != nil {
		return store.Page[D]{}, err
	}
	return store.MapPage(p, q.mapper.ToDTO), nil
}

func (q *QueryService[E, D, C]) CountByCriteria(ctx context.Context, c C) (int64, error) {
	return q.repo.CountBy(ctx, c.Predicate())
}

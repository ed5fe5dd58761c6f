package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

// Repository implements store.Repository using GORM. E must be a GORM model
// whose references are belongs-to associations.
type Repository[E store.Entity[E]] struct {
	db *gorm.DB
}

// NewRepository creates a new Repository
func NewRepository[E store.Entity[E]](db *gorm.DB) *Repository[E] {
	return &Repository[E]{db: db}
}

// Save inserts or fully overwrites the entity, then reloads it with its references.
// Associations are never written: references are identity-only stubs.
func (r *Repository[E]) Save(ctx context.Context, e E) (E, error) {
	var zero E
	db := r.db.WithContext(ctx)

	if e.GetID() == 0 {
		if err := db.Omit(clause.Associations).Create(&e).Error; err != nil {
			return zero, translateWriteError(err)
		}
		return r.FindByID(ctx, e.GetID())
	}

	exists, err := r.ExistsByID(ctx, e.GetID())
	if err != nil {
		return zero, err
	}
	if !exists {
		return zero, store.ErrNotFound
	}
	if err := db.Omit(clause.Associations).Save(&e).Error; err != nil {
		return zero, translateWriteError(err)
	}
	return r.FindByID(ctx, e.GetID())
}

// FindByID loads one entity and its direct references.
func (r *Repository[E]) FindByID(ctx context.Context, id int64) (E, error) {
	var e E
	tx := r.db.WithContext(ctx).Preload(clause.Associations).First(&e, "id = ?", id)
	if tx.Error != nil {
		var zero E
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return zero, store.ErrNotFound
		}
		return zero, tx.Error
	}
	return e, nil
}

func (r *Repository[E]) FindAll(ctx context.Context, page store.PageRequest) (store.Page[E], error) {
	return r.FindBy(ctx, criteria.Predicate{}, page)
}

// FindBy counts the matches, then loads the requested page ordered by the
// requested columns and finally by identity.
func (r *Repository[E]) FindBy(ctx context.Context, p criteria.Predicate, page store.PageRequest) (store.Page[E], error) {
	total, err := r.CountBy(ctx, p)
	if err != nil {
		return store.Page[E]{}, err
	}

	query := Where(r.db.WithContext(ctx).Preload(clause.Associations), p)
	for _, o := range page.Sort {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Descending})
	}
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	if page.Paged() {
		query = query.Limit(page.Size).Offset(page.Offset())
	}

	var rows []E
	if err := query.Find(&rows).Error; err != nil {
		return store.Page[E]{}, err
	}
	return store.NewPage(rows, total, page), nil
}

func (r *Repository[E]) CountBy(ctx context.Context, p criteria.Predicate) (int64, error) {
	var total int64
	err := Where(r.db.WithContext(ctx).Model(new(E)), p).Count(&total).Error
	return total, err
}

func (r *Repository[E]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(E)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteByID deletes by primary key. No matching row is not an error.
func (r *Repository[E]) DeleteByID(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Delete(new(E), id).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return store.ErrReferenced
	}
	return err
}

func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return store.ErrInvalidReference
	}
	return err
}

package store

import (
	"context"
	"errors"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
)

// ErrNotFound is returned when an identity does not resolve to a stored entity
var ErrNotFound = errors.New("entity not found")

// ErrIDExists is returned when a new entity already carries an identity
var ErrIDExists = errors.New("a new entity cannot already have an id")

// ErrReferenced is returned when deleting an entity that other entities still reference
var ErrReferenced = errors.New("entity is still referenced")

// ErrInvalidReference is returned when an entity references an identity that does not exist
var ErrInvalidReference = errors.New("entity references a missing entity")

// Entity is a record with a store-assigned int64 identity. Values exposes the
// column values that criteria predicates are evaluated against.
type Entity[E any] interface {
	GetID() int64
	WithID(id int64) E
	Values() map[string]any
}

// Repository abstracts the primary store for one entity type
type Repository[E Entity[E]] interface {
	// Save inserts the entity when it has no identity and overwrites every
	// column otherwise. Returns ErrNotFound when overwriting a missing identity.
	// The returned entity has its references loaded.
	Save(ctx context.Context, e E) (E, error)

	// FindByID returns ErrNotFound if the identity does not exist.
	FindByID(ctx context.Context, id int64) (E, error)

	// FindAll returns one page of all entities.
	FindAll(ctx context.Context, page PageRequest) (Page[E], error)

	// FindBy returns one page of the entities matching the predicate.
	// An unpaged request returns every match.
	FindBy(ctx context.Context, p criteria.Predicate, page PageRequest) (Page[E], error)

	// CountBy counts the entities matching the predicate.
	CountBy(ctx context.Context, p criteria.Predicate) (int64, error)

	// ExistsByID reports whether the identity exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// DeleteByID removes the entity. Deleting a missing identity is not an error.
	DeleteByID(ctx context.Context, id int64) error
}

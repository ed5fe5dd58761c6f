package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/mirror"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

// ErrInvalidID is returned when an update carries no identity or an identity
// different from the one addressed.
var ErrInvalidID = errors.New("invalid id")

// Mapper converts between an entity and its transfer object.
type Mapper[E, D any] interface {
	ToEntity(d D) E
	ToDTO(e E) D
}

// DTO is a transfer object. A nil identity means not yet persisted.
type DTO[D any] interface {
	GetID() *int64
	WithID(id int64) D
}

// EntityService keeps the primary store and the mirror in lockstep for one
// entity type. The primary store is the source of truth: mirror failures are
// logged and never returned.
type EntityService[E store.Entity[E], D DTO[D]] struct {
	name   string
	repo   store.Repository[E]
	mapper Mapper[E, D]
	index  mirror.Index[D]
	refs   *Relationships
	log    zerolog.Logger
}

// NewEntityService creates a new EntityService. name is the entity type as
// registered in refs; refs may be nil.
func NewEntityService[E store.Entity[E], D DTO[D]](name string, repo store.Repository[E], mapper Mapper[E, D], index mirror.Index[D], refs *Relationships, log zerolog.Logger) *EntityService[E, D] {
	if index == nil {
		index = mirror.Nop[D]{}
	}
	return &EntityService[E, D]{
		name:   name,
		repo:   repo,
		mapper: mapper,
		index:  index,
		refs:   refs,
		log:    log.With().Str("entity", name).Logger(),
	}
}

func (s *EntityService[E, D]) Name() string {
	return s.name
}

// Save inserts the DTO when it has no identity and overwrites the stored
// entity otherwise, then mirrors the reloaded result. Any identity, zero
// included, must resolve to a stored entity.
func (s *EntityService[E, D]) Save(ctx context.Context, d D) (D, error) {
	var zero D
	if id := d.GetID(); id != nil {
		exists, err := s.repo.ExistsByID(ctx, *id)
		if err != nil {
			return zero, err
		}
		if !exists {
			return zero, fmt.Errorf("%w: %s %d", store.ErrNotFound, s.name, *id)
		}
	}
	saved, err := s.repo.Save(ctx, s.mapper.ToEntity(d))
	if err != nil {
		return zero, err
	}
	out := s.mapper.ToDTO(saved)
	s.mirrorSave(ctx, saved.GetID(), out)
	return out, nil
}

// Create saves a DTO that must not carry an identity.
func (s *EntityService[E, D]) Create(ctx context.Context, d D) (D, error) {
	if d.GetID() != nil {
		var zero D
		return zero, store.ErrIDExists
	}
	return s.Save(ctx, d)
}

// Update saves a DTO whose identity must equal id.
func (s *EntityService[E, D]) Update(ctx context.Context, id int64, d D) (D, error) {
	if d.GetID() == nil || *d.GetID() != id {
		var zero D
		return zero, fmt.Errorf("%w: body id must equal %d", ErrInvalidID, id)
	}
	return s.Save(ctx, d)
}

func (s *EntityService[E, D]) FindAll(ctx context.Context, page store.PageRequest) (store.Page[D], error) {
	p, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return store.Page[D]{}, err
	}
	return store.MapPage(p, s.mapper.ToDTO), nil
}

// FindOne returns store.ErrNotFound for a missing identity.
func (s *EntityService[E, D]) FindOne(ctx context.Context, id int64) (D, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var zero D
		return zero, err
	}
	return s.mapper.ToDTO(e), nil
}

// Delete removes the entity from the primary store, then from the mirror.
// It refuses with store.ErrReferenced while another entity references id.
func (s *EntityService[E, D]) Delete(ctx context.Context, id int64) error {
	if s.refs != nil {
		rel, err := s.refs.Referencing(ctx, s.name, id)
		if err != nil {
			return err
		}
		if rel != nil {
			return fmt.Errorf("%w by %s.%s", store.ErrReferenced, rel.ChildType, rel.ParentKeyAttr)
		}
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	if err := s.index.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Int64("id", id).Str("op", "delete").Msg("mirror write failed")
	}
	return nil
}

// Search queries the mirror only.
func (s *EntityService[E, D]) Search(ctx context.Context, query string, page store.PageRequest) (store.Page[D], error) {
	return s.index.Search(ctx, query, page)
}

// Indexed reports whether the mirror holds a document for id.
func (s *EntityService[E, D]) Indexed(ctx context.Context, id int64) (bool, error) {
	return s.index.Exists(ctx, id)
}

// PingMirror checks the mirror when it is backed by a remote service.
func (s *EntityService[E, D]) PingMirror(ctx context.Context) error {
	if p, ok := s.index.(mirror.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *EntityService[E, D]) mirrorSave(ctx context.Context, id int64, d D) {
	if err := s.index.Save(ctx, id, d); err != nil {
		s.log.Warn().Err(err).Int64("id", id).Str("op", "save").Msg("mirror write failed")
	}
}

package service

import (
	"context"
	"fmt"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
)

// Counter counts the entities matching a predicate.
type Counter interface {
	CountBy(ctx context.Context, p criteria.Predicate) (int64, error)
}

// Relationship is a many-to-one reference from a child type to a parent type.
type Relationship struct {
	// ParentType is the referenced entity type (e.g., "merchants").
	ParentType string

	// ChildType is the referencing entity type (e.g., "products").
	ChildType string

	// ParentKeyAttr is the column in the child holding the parent identity (e.g., "merchant_id").
	ParentKeyAttr string

	// Children counts child entities.
	Children Counter
}

// Relationships holds every known reference between entity types.
type Relationships struct {
	relationships []Relationship
	byParent      map[string][]Relationship
}

func NewRelationships() *Relationships {
	return &Relationships{
		byParent: make(map[string][]Relationship),
	}
}

// Register adds a relationship.
func (r *Relationships) Register(rel Relationship) {
	r.relationships = append(r.relationships, rel)
	r.byParent[rel.ParentType] = append(r.byParent[rel.ParentType], rel)
}

// ChildrenOf returns the relationships in which parentType is referenced.
func (r *Relationships) ChildrenOf(parentType string) []Relationship {
	return r.byParent[parentType]
}

func (r *Relationships) All() []Relationship {
	return r.relationships
}

// Referencing returns the first relationship through which some entity still
// references the parent id, or nil when there is none.
func (r *Relationships) Referencing(ctx context.Context, parentType string, id int64) (*Relationship, error) {
	for _, rel := range r.byParent[parentType] {
		n, err := rel.Children.CountBy(ctx, criteria.Where(rel.ParentKeyAttr, criteria.OpEquals, id))
		if err != nil {
			return nil, fmt.Errorf("counting %s referencing %s %d: %w", rel.ChildType, parentType, id, err)
		}
		if n > 0 {
			return &rel, nil
		}
	}
	return nil, nil
}

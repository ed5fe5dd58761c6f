package service

import (
	"net/url"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
)

// LookupCriteria filters the type and status tables.
type LookupCriteria struct {
	ID          *criteria.LongFilter
	Name        *criteria.StringFilter
	Description *criteria.StringFilter
}

func (c *LookupCriteria) Predicate() criteria.Predicate {
	if c == nil {
		return criteria.Predicate{}
	}
	return criteria.And(
		c.ID.On("id"),
		c.Name.On("name"),
		c.Description.On("description"),
	)
}

func ParseLookupCriteria(v url.Values) (*LookupCriteria, error) {
	p := criteria.NewParser(v)
	c := &LookupCriteria{
		ID:          p.Long("id"),
		Name:        p.String("name"),
		Description: p.String("description"),
	}
	return c, p.Err()
}

var LookupSortColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"description": "description",
}

package service

import (
	"net/url"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
)

type MerchantCriteria struct {
	ID               *criteria.LongFilter
	Name             *criteria.StringFilter
	Code             *criteria.StringFilter
	Level            *criteria.IntegerFilter
	Contact          *criteria.StringFilter
	Phone            *criteria.StringFilter
	Address          *criteria.StringFilter
	CreatedAt        *criteria.InstantFilter
	ParentID         *criteria.LongFilter
	MerchantTypeID   *criteria.LongFilter
	MerchantStatusID *criteria.LongFilter
}

func (c *MerchantCriteria) Predicate() criteria.Predicate {
	if c == nil {
		return criteria.Predicate{}
	}
	return criteria.And(
		c.ID.On("id"),
		c.Name.On("name"),
		c.Code.On("code"),
		c.Level.On("level"),
		c.Contact.On("contact"),
		c.Phone.On("phone"),
		c.Address.On("address"),
		c.CreatedAt.On("created_at"),
		c.ParentID.On("parent_id"),
		c.MerchantTypeID.On("merchant_type_id"),
		c.MerchantStatusID.On("merchant_status_id"),
	)
}

// ParseMerchantCriteria binds parameters named after the Merchant DTO fields,
// e.g. level.greaterThan=1 or merchantTypeId.in=1,2.
func ParseMerchantCriteria(v url.Values) (*MerchantCriteria, error) {
	p := criteria.NewParser(v)
	c := &MerchantCriteria{
		ID:               p.Long("id"),
		Name:             p.String("name"),
		Code:             p.String("code"),
		Level:            p.Int("level"),
		Contact:          p.String("contact"),
		Phone:            p.String("phone"),
		Address:          p.String("address"),
		CreatedAt:        p.Instant("createdAt"),
		ParentID:         p.Long("parentId"),
		MerchantTypeID:   p.Long("merchantTypeId"),
		MerchantStatusID: p.Long("merchantStatusId"),
	}
	return c, p.Err()
}

var MerchantSortColumns = map[string]string{
	"id":               "id",
	"name":             "name",
	"code":             "code",
	"level":            "level",
	"contact":          "contact",
	"phone":            "phone",
	"address":          "address",
	"createdAt":        "created_at",
	"parentId":         "parent_id",
	"merchantTypeId":   "merchant_type_id",
	"merchantStatusId": "merchant_status_id",
}

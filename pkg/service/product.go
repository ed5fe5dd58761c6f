package service

import (
	"net/url"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
)

type ProductCriteria struct {
	ID              *criteria.LongFilter
	Name            *criteria.StringFilter
	Code            *criteria.StringFilter
	Price           *criteria.LongFilter
	Stock           *criteria.IntegerFilter
	CreatedAt       *criteria.InstantFilter
	ProductTypeID   *criteria.LongFilter
	ProductStatusID *criteria.LongFilter
	MerchantID      *criteria.LongFilter
}

func (c *ProductCriteria) Predicate() criteria.Predicate {
	if c == nil {
		return criteria.Predicate{}
	}
	return criteria.And(
		c.ID.On("id"),
		c.Name.On("name"),
		c.Code.On("code"),
		c.Price.On("price"),
		c.Stock.On("stock"),
		c.CreatedAt.On("created_at"),
		c.ProductTypeID.On("product_type_id"),
		c.ProductStatusID.On("product_status_id"),
		c.MerchantID.On("merchant_id"),
	)
}

func ParseProductCriteria(v url.Values) (*ProductCriteria, error) {
	p := criteria.NewParser(v)
	c := &ProductCriteria{
		ID:              p.Long("id"),
		Name:            p.String("name"),
		Code:            p.String("code"),
		Price:           p.Long("price"),
		Stock:           p.Int("stock"),
		CreatedAt:       p.Instant("createdAt"),
		ProductTypeID:   p.Long("productTypeId"),
		ProductStatusID: p.Long("productStatusId"),
		MerchantID:      p.Long("merchantId"),
	}
	return c, p.Err()
}

var ProductSortColumns = map[string]string{
	"id":              "id",
	"name":            "name",
	"code":            "code",
	"price":           "price",
	"stock":           "stock",
	"createdAt":       "created_at",
	"productTypeId":   "product_type_id",
	"productStatusId": "product_status_id",
	"merchantId":      "merchant_id",
}

package service

import (
	"net/url"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
)

type OrderCriteria struct {
	ID            *criteria.LongFilter
	OrderNo       *criteria.StringFilter
	Quantity      *criteria.IntegerFilter
	Amount        *criteria.LongFilter
	Remark        *criteria.StringFilter
	OrderedAt     *criteria.InstantFilter
	ProductID     *criteria.LongFilter
	MerchantID    *criteria.LongFilter
	OrderStatusID *criteria.LongFilter
}

func (c *OrderCriteria) Predicate() criteria.Predicate {
	if c == nil {
		return criteria.Predicate{}
	}
	return criteria.And(
		c.ID.On("id"),
		c.OrderNo.On("order_no"),
		c.Quantity.On("quantity"),
		c.Amount.On("amount"),
		c.Remark.On("remark"),
		c.OrderedAt.On("ordered_at"),
		c.ProductID.On("product_id"),
		c.MerchantID.On("merchant_id"),
		c.OrderStatusID.On("order_status_id"),
	)
}

func ParseOrderCriteria(v url.Values) (*OrderCriteria, error) {
	p := criteria.NewParser(v)
	c := &OrderCriteria{
		ID:            p.Long("id"),
		OrderNo:       p.String("orderNo"),
		Quantity:      p.Int("quantity"),
		Amount:        p.Long("amount"),
		Remark:        p.String("remark"),
		OrderedAt:     p.Instant("orderedAt"),
		ProductID:     p.Long("productId"),
		MerchantID:    p.Long("merchantId"),
		OrderStatusID: p.Long("orderStatusId"),
	}
	return c, p.Err()
}

var OrderSortColumns = map[string]string{
	"id":            "id",
	"orderNo":       "order_no",
	"quantity":      "quantity",
	"amount":        "amount",
	"remark":        "remark",
	"orderedAt":     "ordered_at",
	"productId":     "product_id",
	"merchantId":    "merchant_id",
	"orderStatusId": "order_status_id",
}

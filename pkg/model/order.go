package model

import "time"

// Order is a purchase of a product placed with a merchant. Amount is in minor
// currency units.
type Order struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	OrderNo       string     `gorm:"column:order_no;not null"`
	Quantity      *int       `gorm:"column:quantity"`
	Amount        *int64     `gorm:"column:amount"`
	Remark        *string    `gorm:"column:remark"`
	OrderedAt     *time.Time `gorm:"column:ordered_at"`
	ProductID     *int64     `gorm:"column:product_id"`
	Product       *Product
	MerchantID    *int64 `gorm:"column:merchant_id"`
	Merchant      *Merchant
	OrderStatusID *int64 `gorm:"column:order_status_id"`
	OrderStatus   *OrderStatus
}

func (Order) TableName() string {
	return "orders"
}

func (o Order) GetID() int64 {
	return o.ID
}

func (o Order) WithID(id int64) Order {
	o.ID = id
	return o
}

func (o Order) Values() map[string]any {
	return map[string]any{
		"id":              o.ID,
		"order_no":        o.OrderNo,
		"quantity":        o.Quantity,
		"amount":          o.Amount,
		"remark":          o.Remark,
		"ordered_at":      o.OrderedAt,
		"product_id":      o.ProductID,
		"merchant_id":     o.MerchantID,
		"order_status_id": o.OrderStatusID,
	}
}

func OrderFromID(id *int64) *Order {
	if id == nil {
		return nil
	}
	return &Order{ID: *id}
}

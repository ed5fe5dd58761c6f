package model

import "time"

// Product is an item sold by a merchant. Price is in minor currency units.
type Product struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	Name            string     `gorm:"column:name;not null"`
	Code            *string    `gorm:"column:code"`
	Price           *int64     `gorm:"column:price"`
	Stock           *int       `gorm:"column:stock"`
	CreatedAt       *time.Time `gorm:"column:created_at;autoCreateTime:false"`
	ProductTypeID   *int64     `gorm:"column:product_type_id"`
	ProductType     *ProductType
	ProductStatusID *int64 `gorm:"column:product_status_id"`
	ProductStatus   *ProductStatus
	MerchantID      *int64 `gorm:"column:merchant_id"`
	Merchant        *Merchant
}

func (Product) TableName() string {
	return "products"
}

func (p Product) GetID() int64 {
	return p.ID
}

func (p Product) WithID(id int64) Product {
	p.ID = id
	return p
}

func (p Product) Values() map[string]any {
	return map[string]any{
		"id":                p.ID,
		"name":              p.Name,
		"code":              p.Code,
		"price":             p.Price,
		"stock":             p.Stock,
		"created_at":        p.CreatedAt,
		"product_type_id":   p.ProductTypeID,
		"product_status_id": p.ProductStatusID,
		"merchant_id":       p.MerchantID,
	}
}

func ProductFromID(id *int64) *Product {
	if id == nil {
		return nil
	}
	return &Product{ID: *id}
}

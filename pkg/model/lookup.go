package model

// Lookup is the shape shared by the type and status tables.
type Lookup struct {
	ID          int64   `gorm:"column:id;primaryKey"`
	Name        string  `gorm:"column:name;not null"`
	Description *string `gorm:"column:description"`
}

func (l Lookup) GetID() int64 {
	return l.ID
}

func (l Lookup) Values() map[string]any {
	return map[string]any{
		"id":          l.ID,
		"name":        l.Name,
		"description": l.Description,
	}
}

type MerchantType struct {
	Lookup
}

func (MerchantType) TableName() string {
	return "merchant_types"
}

func (t MerchantType) WithID(id int64) MerchantType {
	t.ID = id
	return t
}

// MerchantTypeFromID builds an identity-only reference, nil for a nil id.
func MerchantTypeFromID(id *int64) *MerchantType {
	if id == nil {
		return nil
	}
	return &MerchantType{Lookup{ID: *id}}
}

type MerchantStatus struct {
	Lookup
}

func (MerchantStatus) TableName() string {
	return "merchant_statuses"
}

func (s MerchantStatus) WithID(id int64) MerchantStatus {
	s.ID = id
	return s
}

func MerchantStatusFromID(id *int64) *MerchantStatus {
	if id == nil {
		return nil
	}
	return &MerchantStatus{Lookup{ID: *id}}
}

type ProductType struct {
	Lookup
}

func (ProductType) TableName() string {
	return "product_types"
}

func (t ProductType) WithID(id int64) ProductType {
	t.ID = id
	return t
}

func ProductTypeFromID(id *int64) *ProductType {
	if id == nil {
		return nil
	}
	return &ProductType{Lookup{ID: *id}}
}

type ProductStatus struct {
	Lookup
}

func (ProductStatus) TableName() string {
	return "product_statuses"
}

func (s ProductStatus) WithID(id int64) ProductStatus {
	s.ID = id
	return s
}

func ProductStatusFromID(id *int64) *ProductStatus {
	if id == nil {
		return nil
	}
	return &ProductStatus{Lookup{ID: *id}}
}

type OrderStatus struct {
	Lookup
}

func (OrderStatus) TableName() string {
	return "order_statuses"
}

func (s OrderStatus) WithID(id int64) OrderStatus {
	s.ID = id
	return s
}

func OrderStatusFromID(id *int64) *OrderStatus {
	if id == nil {
		return nil
	}
	return &OrderStatus{Lookup{ID: *id}}
}

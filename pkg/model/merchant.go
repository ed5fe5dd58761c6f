package model

import "time"

// Merchant is a seller in the distribution network. Merchants form a tree
// through Parent.
type Merchant struct {
	ID               int64      `gorm:"column:id;primaryKey"`
	Name             string     `gorm:"column:name;not null"`
	Code             *string    `gorm:"column:code"`
	Level            *int       `gorm:"column:level"`
	Contact          *string    `gorm:"column:contact"`
	Phone            *string    `gorm:"column:phone"`
	Address          *string    `gorm:"column:address"`
	CreatedAt        *time.Time `gorm:"column:created_at;autoCreateTime:false"`
	ParentID         *int64     `gorm:"column:parent_id"`
	Parent           *Merchant  `gorm:"foreignKey:ParentID"`
	MerchantTypeID   *int64     `gorm:"column:merchant_type_id"`
	MerchantType     *MerchantType
	MerchantStatusID *int64 `gorm:"column:merchant_status_id"`
	MerchantStatus   *MerchantStatus
}

func (Merchant) TableName() string {
	return "merchants"
}

func (m Merchant) GetID() int64 {
	return m.ID
}

func (m Merchant) WithID(id int64) Merchant {
	m.ID = id
	return m
}

func (m Merchant) Values() map[string]any {
	return map[string]any{
		"id":                 m.ID,
		"name":               m.Name,
		"code":               m.Code,
		"level":              m.Level,
		"contact":            m.Contact,
		"phone":              m.Phone,
		"address":            m.Address,
		"created_at":         m.CreatedAt,
		"parent_id":          m.ParentID,
		"merchant_type_id":   m.MerchantTypeID,
		"merchant_status_id": m.MerchantStatusID,
	}
}

// MerchantFromID builds an identity-only reference, nil for a nil id.
func MerchantFromID(id *int64) *Merchant {
	if id == nil {
		return nil
	}
	return &Merchant{ID: *id}
}

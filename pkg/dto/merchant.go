package dto

import (
	"time"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/model"
)

type Merchant struct {
	ID                 *int64     `json:"id"`
	Name               string     `json:"name"`
	Code               *string    `json:"code,omitempty"`
	Level              *int       `json:"level,omitempty"`
	Contact            *string    `json:"contact,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	Address            *string    `json:"address,omitempty"`
	CreatedAt          *time.Time `json:"createdAt,omitempty"`
	ParentID           *int64     `json:"parentId,omitempty"`
	ParentName         *string    `json:"parentName,omitempty"`
	MerchantTypeID     *int64     `json:"merchantTypeId,omitempty"`
	MerchantTypeName   *string    `json:"merchantTypeName,omitempty"`
	MerchantStatusID   *int64     `json:"merchantStatusId,omitempty"`
	MerchantStatusName *string    `json:"merchantStatusName,omitempty"`
}

func (m Merchant) GetID() *int64 {
	return m.ID
}

func (m Merchant) WithID(id int64) Merchant {
	m.ID = &id
	return m
}

type MerchantMapper struct{}

func (MerchantMapper) ToEntity(d Merchant) model.Merchant {
	return model.Merchant{
		ID:               idValue(d.ID),
		Name:             d.Name,
		Code:             d.Code,
		Level:            d.Level,
		Contact:          d.Contact,
		Phone:            d.Phone,
		Address:          d.Address,
		CreatedAt:        d.CreatedAt,
		ParentID:         d.ParentID,
		Parent:           model.MerchantFromID(d.ParentID),
		MerchantTypeID:   d.MerchantTypeID,
		MerchantType:     model.MerchantTypeFromID(d.MerchantTypeID),
		MerchantStatusID: d.MerchantStatusID,
		MerchantStatus:   model.MerchantStatusFromID(d.MerchantStatusID),
	}
}

func (MerchantMapper) ToDTO(m model.Merchant) Merchant {
	d := Merchant{
		ID:               idRef(m.ID),
		Name:             m.Name,
		Code:             m.Code,
		Level:            m.Level,
		Contact:          m.Contact,
		Phone:            m.Phone,
		Address:          m.Address,
		CreatedAt:        m.CreatedAt,
		ParentID:         m.ParentID,
		MerchantTypeID:   m.MerchantTypeID,
		MerchantStatusID: m.MerchantStatusID,
	}
	if m.Parent != nil {
		d.ParentID = idRef(m.Parent.ID)
		d.ParentName = nameRef(m.Parent.Name)
	}
	if m.MerchantType != nil {
		d.MerchantTypeID = idRef(m.MerchantType.ID)
		d.MerchantTypeName = nameRef(m.MerchantType.Name)
	}
	if m.MerchantStatus != nil {
		d.MerchantStatusID = idRef(m.MerchantStatus.ID)
		d.MerchantStatusName = nameRef(m.MerchantStatus.Name)
	}
	return d
}

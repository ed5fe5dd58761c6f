package dto

import (
	"time"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/model"
)

type Product struct {
	ID                *int64     `json:"id"`
	Name              string     `json:"name"`
	Code              *string    `json:"code,omitempty"`
	Price             *int64     `json:"price,omitempty"`
	Stock             *int       `json:"stock,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
	ProductTypeID     *int64     `json:"productTypeId,omitempty"`
	ProductTypeName   *string    `json:"productTypeName,omitempty"`
	ProductStatusID   *int64     `json:"productStatusId,omitempty"`
	ProductStatusName *string    `json:"productStatusName,omitempty"`
	MerchantID        *int64     `json:"merchantId,omitempty"`
	MerchantName      *string    `json:"merchantName,omitempty"`
}

func (p Product) GetID() *int64 {
	return p.ID
}

func (p Product) WithID(id int64) Product {
	p.ID = &id
	return p
}

type ProductMapper struct{}

func (ProductMapper) ToEntity(d Product) model.Product {
	return model.Product{
		ID:              idValue(d.ID),
		Name:            d.Name,
		Code:            d.Code,
		Price:           d.Price,
		Stock:           d.Stock,
		CreatedAt:       d.CreatedAt,
		ProductTypeID:   d.ProductTypeID,
		ProductType:     model.ProductTypeFromID(d.ProductTypeID),
		ProductStatusID: d.ProductStatusID,
		ProductStatus:   model.ProductStatusFromID(d.ProductStatusID),
		MerchantID:      d.MerchantID,
		Merchant:        model.MerchantFromID(d.MerchantID),
	}
}

func (ProductMapper) ToDTO(p model.Product) Product {
	d := Product{
		ID:              idRef(p.ID),
		Name:            p.Name,
		Code:            p.Code,
		Price:           p.Price,
		Stock:           p.Stock,
		CreatedAt:       p.CreatedAt,
		ProductTypeID:   p.ProductTypeID,
		ProductStatusID: p.ProductStatusID,
		MerchantID:      p.MerchantID,
	}
	if p.ProductType != nil {
		d.ProductTypeID = idRef(p.ProductType.ID)
		d.ProductTypeName = nameRef(p.ProductType.Name)
	}
	if p.ProductStatus != nil {
		d.ProductStatusID = idRef(p.ProductStatus.ID)
		d.ProductStatusName = nameRef(p.ProductStatus.Name)
	}
	if p.Merchant != nil {
		d.MerchantID = idRef(p.Merchant.ID)
		d.MerchantName = nameRef(p.Merchant.Name)
	}
	return d
}

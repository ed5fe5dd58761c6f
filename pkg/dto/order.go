package dto

import (
	"time"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/model"
)

// Order is displayed by its product and merchant names.
type Order struct {
	ID              *int64     `json:"id"`
	OrderNo         string     `json:"orderNo"`
	Quantity        *int       `json:"quantity,omitempty"`
	Amount          *int64     `json:"amount,omitempty"`
	Remark          *string    `json:"remark,omitempty"`
	OrderedAt       *time.Time `json:"orderedAt,omitempty"`
	ProductID       *int64     `json:"productId,omitempty"`
	ProductName     *string    `json:"productName,omitempty"`
	MerchantID      *int64     `json:"merchantId,omitempty"`
	MerchantName    *string    `json:"merchantName,omitempty"`
	OrderStatusID   *int64     `json:"orderStatusId,omitempty"`
	OrderStatusName *string    `json:"orderStatusName,omitempty"`
}

func (o Order) GetID() *int64 {
	return o.ID
}

func (o Order) WithID(id int64) Order {
	o.ID = &id
	return o
}

type OrderMapper struct{}

func (OrderMapper) ToEntity(d Order) model.Order {
	return model.Order{
		ID:            idValue(d.ID),
		OrderNo:       d.OrderNo,
		Quantity:      d.Quantity,
		Amount:        d.Amount,
		Remark:        d.Remark,
		OrderedAt:     d.OrderedAt,
		ProductID:     d.ProductID,
		Product:       model.ProductFromID(d.ProductID),
		MerchantID:    d.MerchantID,
		Merchant:      model.MerchantFromID(d.MerchantID),
		OrderStatusID: d.OrderStatusID,
		OrderStatus:   model.OrderStatusFromID(d.OrderStatusID),
	}
}

func (OrderMapper) ToDTO(o model.Order) Order {
	d := Order{
		ID:            idRef(o.ID),
		OrderNo:       o.OrderNo,
		Quantity:      o.Quantity,
		Amount:        o.Amount,
		Remark:        o.Remark,
		OrderedAt:     o.OrderedAt,
		ProductID:     o.ProductID,
		MerchantID:    o.MerchantID,
		OrderStatusID: o.OrderStatusID,
	}
	if o.Product != nil {
		d.ProductID = idRef(o.Product.ID)
		d.ProductName = nameRef(o.Product.Name)
	}
	if o.Merchant != nil {
		d.MerchantID = idRef(o.Merchant.ID)
		d.MerchantName = nameRef(o.Merchant.Name)
	}
	if o.OrderStatus != nil {
		d.OrderStatusID = idRef(o.OrderStatus.ID)
		d.OrderStatusName = nameRef(o.OrderStatus.Name)
	}
	return d
}

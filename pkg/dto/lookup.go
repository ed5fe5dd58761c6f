package dto

import "github.com/doodlesbykumbi/merchant-in-go/pkg/model"

// Lookup is the transfer object of every type and status table.
type Lookup struct {
	ID          *int64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (l Lookup) GetID() *int64 {
	return l.ID
}

func (l Lookup) WithID(id int64) Lookup {
	l.ID = &id
	return l
}

// LookupMapper converts one lookup model to and from Lookup.
type LookupMapper[E any] struct {
	wrap   func(model.Lookup) E
	unwrap func(E) model.Lookup
}

func (m LookupMapper[E]) ToEntity(d Lookup) E {
	l := model.Lookup{Name: d.Name, Description: d.Description}
	if d.ID != nil {
		l.ID = *d.ID
	}
	return m.wrap(l)
}

func (m LookupMapper[E]) ToDTO(e E) Lookup {
	l := m.unwrap(e)
	return Lookup{ID: idRef(l.ID), Name: l.Name, Description: l.Description}
}

var (
	MerchantTypeMapper = LookupMapper[model.MerchantType]{
		wrap:   func(l model.Lookup) model.MerchantType { return model.MerchantType{Lookup: l} },
		unwrap: func(e model.MerchantType) model.Lookup { return e.Lookup },
	}
	MerchantStatusMapper = LookupMapper[model.MerchantStatus]{
		wrap:   func(l model.Lookup) model.MerchantStatus { return model.MerchantStatus{Lookup: l} },
		unwrap: func(e model.MerchantStatus) model.Lookup { return e.Lookup },
	}
	ProductTypeMapper = LookupMapper[model.ProductType]{
		wrap:   func(l model.Lookup) model.ProductType { return model.ProductType{Lookup: l} },
		unwrap: func(e model.ProductType) model.Lookup { return e.Lookup },
	}
	ProductStatusMapper = LookupMapper[model.ProductStatus]{
		wrap:   func(l model.Lookup) model.ProductStatus { return model.ProductStatus{Lookup: l} },
		unwrap: func(e model.ProductStatus) model.Lookup { return e.Lookup },
	}
	OrderStatusMapper = LookupMapper[model.OrderStatus]{
		wrap:   func(l model.Lookup) model.OrderStatus { return model.OrderStatus{Lookup: l} },
		unwrap: func(e model.OrderStatus) model.Lookup { return e.Lookup },
	}
)

// idRef maps the unsaved identity 0 to nil.
func idRef(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// nameRef maps the empty name of an unloaded reference to nil.
func nameRef(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}

func idValue(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

package service

import (
	"net/url"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/dto"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/mirror"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/model"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

// Resource bundles everything needed to serve one entity type.
type Resource[E store.Entity[E], D DTO[D], C Criteria] struct {
	// Name is the entity type, equal to its table name.
	Name string

	// Path is the plural path segment used by the HTTP adapter.
	Path string

	Entities      *EntityService[E, D]
	Queries       *QueryService[E, D, C]
	ParseCriteria func(url.Values) (C, error)

	// SortColumns maps DTO field names to sortable columns.
	SortColumns map[string]string
}

func newResource[E store.Entity[E], D DTO[D], C Criteria](
	name, path string,
	repo store.Repository[E],
	mapper Mapper[E, D],
	index mirror.Index[D],
	refs *Relationships,
	log zerolog.Logger,
	parse func(url.Values) (C, error),
	sortColumns map[string]string,
) *Resource[E, D, C] {
	return &Resource[E, D, C]{
		Name:          name,
		Path:          path,
		Entities:      NewEntityService(name, repo, mapper, index, refs, log),
		Queries:       NewQueryService[E, D, C](repo, mapper),
		ParseCriteria: parse,
		SortColumns:   sortColumns,
	}
}

// Stores holds the primary store of every entity type.
type Stores struct {
	MerchantTypes    store.Repository[model.MerchantType]
	MerchantStatuses store.Repository[model.MerchantStatus]
	ProductTypes     store.Repository[model.ProductType]
	ProductStatuses  store.Repository[model.ProductStatus]
	OrderStatuses    store.Repository[model.OrderStatus]
	Merchants        store.Repository[model.Merchant]
	Products         store.Repository[model.Product]
	Orders           store.Repository[model.Order]
}

// Indexes holds the mirror of every entity type. Nil fields mirror nothing.
type Indexes struct {
	MerchantTypes    mirror.Index[dto.Lookup]
	MerchantStatuses mirror.Index[dto.Lookup]
	ProductTypes     mirror.Index[dto.Lookup]
	ProductStatuses  mirror.Index[dto.Lookup]
	OrderStatuses    mirror.Index[dto.Lookup]
	Merchants        mirror.Index[dto.Merchant]
	Products         mirror.Index[dto.Product]
	Orders           mirror.Index[dto.Order]
}

// Registry holds one Resource per entity type and the references between them.
type Registry struct {
	MerchantTypes    *Resource[model.MerchantType, dto.Lookup, *LookupCriteria]
	MerchantStatuses *Resource[model.MerchantStatus, dto.Lookup, *LookupCriteria]
	ProductTypes     *Resource[model.ProductType, dto.Lookup, *LookupCriteria]
	ProductStatuses  *Resource[model.ProductStatus, dto.Lookup, *LookupCriteria]
	OrderStatuses    *Resource[model.OrderStatus, dto.Lookup, *LookupCriteria]
	Merchants        *Resource[model.Merchant, dto.Merchant, *MerchantCriteria]
	Products         *Resource[model.Product, dto.Product, *ProductCriteria]
	Orders           *Resource[model.Order, dto.Order, *OrderCriteria]

	Relationships *Relationships
}

// NewRegistry wires services over the given stores and mirrors and registers
// every reference declared by the schema.
func NewRegistry(s Stores, ix Indexes, log zerolog.Logger) *Registry {
	refs := NewRelationships()
	for _, rel := range []Relationship{
		{ParentType: "merchant_types", ChildType: "merchants", ParentKeyAttr: "merchant_type_id", Children: s.Merchants},
		{ParentType: "merchant_statuses", ChildType: "merchants", ParentKeyAttr: "merchant_status_id", Children: s.Merchants},
		{ParentType: "merchants", ChildType: "merchants", ParentKeyAttr: "parent_id", Children: s.Merchants},
		{ParentType: "merchants", ChildType: "products", ParentKeyAttr: "merchant_id", Children: s.Products},
		{ParentType: "merchants", ChildType: "orders", ParentKeyAttr: "merchant_id", Children: s.Orders},
		{ParentType: "product_types", ChildType: "products", ParentKeyAttr: "product_type_id", Children: s.Products},
		{ParentType: "product_statuses", ChildType: "products", ParentKeyAttr: "product_status_id", Children: s.Products},
		{ParentType: "products", ChildType: "orders", ParentKeyAttr: "product_id", Children: s.Orders},
		{ParentType: "order_statuses", ChildType: "orders", ParentKeyAttr: "order_status_id", Children: s.Orders},
	} {
		refs.Register(rel)
	}

	return &Registry{
		MerchantTypes: newResource("merchant_types", "merchant-types",
			s.MerchantTypes, dto.MerchantTypeMapper, ix.MerchantTypes, refs, log,
			ParseLookupCriteria, LookupSortColumns),
		MerchantStatuses: newResource("merchant_statuses", "merchant-statuses",
			s.MerchantStatuses, dto.MerchantStatusMapper, ix.MerchantStatuses, refs, log,
			ParseLookupCriteria, LookupSortColumns),
		ProductTypes: newResource("product_types", "product-types",
			s.ProductTypes, dto.ProductTypeMapper, ix.ProductTypes, refs, log,
			ParseLookupCriteria, LookupSortColumns),
		ProductStatuses: newResource("product_statuses", "product-statuses",
			s.ProductStatuses, dto.ProductStatusMapper, ix.ProductStatuses, refs, log,
			ParseLookupCriteria, LookupSortColumns),
		OrderStatuses: newResource("order_statuses", "order-statuses",
			s.OrderStatuses, dto.OrderStatusMapper, ix.OrderStatuses, refs, log,
			ParseLookupCriteria, LookupSortColumns),
		Merchants: newResource("merchants", "merchants",
			s.Merchants, dto.MerchantMapper{}, ix.Merchants, refs, log,
			ParseMerchantCriteria, MerchantSortColumns),
		Products: newResource("products", "products",
			s.Products, dto.ProductMapper{}, ix.Products, refs, log,
			ParseProductCriteria, ProductSortColumns),
		Orders: newResource("orders", "orders",
			s.Orders, dto.OrderMapper{}, ix.Orders, refs, log,
			ParseOrderCriteria, OrderSortColumns),
		Relationships: refs,
	}
}

// Reindexers returns the entity services in dependency order.
func (r *Registry) Reindexers() []Reindexer {
	return []Reindexer{
		r.MerchantTypes.Entities,
		r.MerchantStatuses.Entities,
		r.ProductTypes.Entities,
		r.ProductStatuses.Entities,
		r.OrderStatuses.Entities,
		r.Merchants.Entities,
		r.Products.Entities,
		r.Orders.Entities,
	}
}

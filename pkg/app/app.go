// Package app assembles the primary store, the search mirror and the services
// of every entity type from a MerchantConfig.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/config"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/db"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/dto"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/logging"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/mirror"
	mirrormemory "github.com/doodlesbykumbi/merchant-in-go/pkg/mirror/memory"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/mirror/surreal"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/model"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/merchant-in-go/pkg/server/store/gorm"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store/memory"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/service"
)

// HealthCheck is one named dependency probe.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// App holds the wired services and the connections they use.
type App struct {
	Config   *config.MerchantConfig
	DB       *gorm.DB
	Registry *service.Registry

	checks  []HealthCheck
	closers []func(context.Context) error
	log     zerolog.Logger
}

// Open connects to PostgreSQL when it is the primary store and builds the App.
func Open(ctx context.Context, cfg *config.MerchantConfig) (*App, error) {
	var gdb *gorm.DB
	if cfg.PrimaryStore == config.StorePostgres {
		l := logging.Component("gorm")
		var err error
		gdb, err = db.Connect(db.Config{LogLevel: logging.GormLevel(), Logger: &l})
		if err != nil {
			return nil, err
		}
	}
	return Build(ctx, cfg, gdb)
}

// Build wires the services over gdb, or over memory stores when the primary
// store is memory. gdb may be nil in that case.
func Build(ctx context.Context, cfg *config.MerchantConfig, gdb *gorm.DB) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{Config: cfg, DB: gdb, log: logging.Component("app")}

	var stores service.Stores
	var health store.HealthStore
	switch cfg.PrimaryStore {
	case config.StorePostgres:
		if gdb == nil {
			return nil, fmt.Errorf("primary_store %s needs a database connection", config.StorePostgres)
		}
		stores = gormStores(gdb)
		health = gormstore.NewHealthStore(gdb)
		if sqlDB, err := gdb.DB(); err == nil {
			a.closers = append(a.closers, func(context.Context) error { return sqlDB.Close() })
		}
	case config.StoreMemory:
		stores = MemoryStores()
		health = store.HealthFunc(func() error { return nil })
	}
	a.checks = append(a.checks, HealthCheck{Name: "db", Check: func(context.Context) error {
		return health.CheckConnectivity()
	}})

	indexes, err := a.openMirror(ctx, cfg)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	a.Registry = service.NewRegistry(stores, indexes, logging.Component("service"))
	a.log.Info().Str("primary_store", cfg.PrimaryStore).Str("mirror", cfg.Mirror).Msg("services ready")
	return a, nil
}

func (a *App) openMirror(ctx context.Context, cfg *config.MerchantConfig) (service.Indexes, error) {
	switch cfg.Mirror {
	case config.MirrorMemory:
		return MemoryIndexes(), nil
	case config.MirrorSurrealDB:
		client, err := surreal.Connect(ctx, surreal.Config{
			URL:       cfg.SurrealURL,
			Namespace: cfg.SurrealNamespace,
			Database:  cfg.SurrealDatabase,
			Username:  cfg.SurrealUsername,
			Password:  cfg.SurrealPassword,
		})
		if err != nil {
			return service.Indexes{}, err
		}
		a.closers = append(a.closers, client.Close)
		a.checks = append(a.checks, HealthCheck{Name: "mirror", Check: client.Ping})
		return SurrealIndexes(client), nil
	}
	return service.Indexes{}, nil
}

// Checks returns the dependency probes, primary store first.
func (a *App) Checks() []HealthCheck {
	return a.checks
}

// Reindex rebuilds the mirror of every entity type from the primary store.
func (a *App) Reindex(ctx context.Context, batch int) ([]service.ReindexStats, error) {
	var all []service.ReindexStats
	for _, r := range a.Registry.Reindexers() {
		stats, err := r.Reindex(ctx, batch)
		all = append(all, stats)
		if err != nil {
			return all, err
		}
	}
	return all, nil
}

// Close releases the connections in reverse order of opening.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func gormStores(gdb *gorm.DB) service.Stores {
	return service.Stores{
		MerchantTypes:    gormstore.NewRepository[model.MerchantType](gdb),
		MerchantStatuses: gormstore.NewRepository[model.MerchantStatus](gdb),
		ProductTypes:     gormstore.NewRepository[model.ProductType](gdb),
		ProductStatuses:  gormstore.NewRepository[model.ProductStatus](gdb),
		OrderStatuses:    gormstore.NewRepository[model.OrderStatus](gdb),
		Merchants:        gormstore.NewRepository[model.Merchant](gdb),
		Products:         gormstore.NewRepository[model.Product](gdb),
		Orders:           gormstore.NewRepository[model.Order](gdb),
	}
}

// MemoryIndexes returns an in-process mirror for every entity type.
func MemoryIndexes() service.Indexes {
	return service.Indexes{
		MerchantTypes:    mirrormemory.NewIndex[dto.Lookup](),
		MerchantStatuses: mirrormemory.NewIndex[dto.Lookup](),
		ProductTypes:     mirrormemory.NewIndex[dto.Lookup](),
		ProductStatuses:  mirrormemory.NewIndex[dto.Lookup](),
		OrderStatuses:    mirrormemory.NewIndex[dto.Lookup](),
		Merchants:        mirrormemory.NewIndex[dto.Merchant](),
		Products:         mirrormemory.NewIndex[dto.Product](),
		Orders:           mirrormemory.NewIndex[dto.Order](),
	}
}

// SurrealIndexes returns one SurrealDB table per entity type, named after the
// entity's primary table.
func SurrealIndexes(c *surreal.Client) service.Indexes {
	return service.Indexes{
		MerchantTypes:    surrealIndex[dto.Lookup](c, model.MerchantType{}.TableName()),
		MerchantStatuses: surrealIndex[dto.Lookup](c, model.MerchantStatus{}.TableName()),
		ProductTypes:     surrealIndex[dto.Lookup](c, model.ProductType{}.TableName()),
		ProductStatuses:  surrealIndex[dto.Lookup](c, model.ProductStatus{}.TableName()),
		OrderStatuses:    surrealIndex[dto.Lookup](c, model.OrderStatus{}.TableName()),
		Merchants:        surrealIndex[dto.Merchant](c, model.Merchant{}.TableName()),
		Products:         surrealIndex[dto.Product](c, model.Product{}.TableName()),
		Orders:           surrealIndex[dto.Order](c, model.Order{}.TableName()),
	}
}

func surrealIndex[D any](c *surreal.Client, table string) mirror.Index[D] {
	return surreal.NewIndex[D](c, table)
}

// MemoryStores returns in-memory stores that validate references on save and
// load them on read, like the foreign keys and preloads of the SQL schema.
func MemoryStores() service.Stores {
	merchantTypes := memory.NewRepository[model.MerchantType]()
	merchantStatuses := memory.NewRepository[model.MerchantStatus]()
	productTypes := memory.NewRepository[model.ProductType]()
	productStatuses := memory.NewRepository[model.ProductStatus]()
	orderStatuses := memory.NewRepository[model.OrderStatus]()

	var merchants *memory.Repository[model.Merchant]
	merchants = memory.NewRepository[model.Merchant](memory.WithResolver[model.Merchant](func(_ context.Context, m model.Merchant) (model.Merchant, error) {
		var err error
		if m.Parent, err = reference(merchants.Get, m.ParentID, "parent_id"); err != nil {
			return m, err
		}
		if m.MerchantType, err = reference(merchantTypes.Get, m.MerchantTypeID, "merchant_type_id"); err != nil {
			return m, err
		}
		m.MerchantStatus, err = reference(merchantStatuses.Get, m.MerchantStatusID, "merchant_status_id")
		return m, err
	}))

	products := memory.NewRepository[model.Product](memory.WithResolver[model.Product](func(_ context.Context, p model.Product) (model.Product, error) {
		var err error
		if p.ProductType, err = reference(productTypes.Get, p.ProductTypeID, "product_type_id"); err != nil {
			return p, err
		}
		if p.ProductStatus, err = reference(productStatuses.Get, p.ProductStatusID, "product_status_id"); err != nil {
			return p, err
		}
		p.Merchant, err = reference(merchants.Get, p.MerchantID, "merchant_id")
		return p, err
	}))

	orders := memory.NewRepository[model.Order](memory.WithResolver[model.Order](func(_ context.Context, o model.Order) (model.Order, error) {
		var err error
		if o.Product, err = reference(products.Get, o.ProductID, "product_id"); err != nil {
			return o, err
		}
		if o.Merchant, err = reference(merchants.Get, o.MerchantID, "merchant_id"); err != nil {
			return o, err
		}
		o.OrderStatus, err = reference(orderStatuses.Get, o.OrderStatusID, "order_status_id")
		return o, err
	}))

	return service.Stores{
		MerchantTypes:    merchantTypes,
		MerchantStatuses: merchantStatuses,
		ProductTypes:     productTypes,
		ProductStatuses:  productStatuses,
		OrderStatuses:    orderStatuses,
		Merchants:        merchants,
		Products:         products,
		Orders:           orders,
	}
}

// reference loads the row behind a nullable foreign key without its own
// references, the way a single-level preload does.
func reference[E any](get func(int64) (E, bool), id *int64, attr string) (*E, error) {
	if id == nil {
		return nil, nil
	}
	e, ok := get(*id)
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", store.ErrInvalidReference, attr, *id)
	}
	return &e, nil
}

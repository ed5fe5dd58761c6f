package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/config"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/dto"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

func memoryConfig(t *testing.T, mirror string) *config.MerchantConfig {
	t.Helper()
	t.Setenv("MERCHANT_CONFIG_PATH", t.TempDir())
	t.Setenv("MERCHANT_PRIMARY_STORE", config.StoreMemory)
	t.Setenv("MERCHANT_MIRROR", mirror)
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func strPtr(s string) *string { return &s }

func TestBuildRequiresDatabaseForPostgres(t *testing.T) {
	cfg := memoryConfig(t, config.MirrorNone)
	cfg.PrimaryStore = config.StorePostgres

	_, err := Build(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "needs a database connection")
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := memoryConfig(t, "elastic")

	_, err := Build(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "invalid mirror value")
}

func TestMemoryStoresResolveReferences(t *testing.T) {
	ctx := context.Background()
	a, err := Build(ctx, memoryConfig(t, config.MirrorMemory), nil)
	require.NoError(t, err)
	defer a.Close(ctx)
	reg := a.Registry

	active, err := reg.MerchantStatuses.Entities.Create(ctx, dto.Lookup{Name: "Active"})
	require.NoError(t, err)
	retail, err := reg.MerchantTypes.Entities.Create(ctx, dto.Lookup{Name: "Retail"})
	require.NoError(t, err)

	parent, err := reg.Merchants.Entities.Create(ctx, dto.Merchant{Name: "Acme"})
	require.NoError(t, err)

	child, err := reg.Merchants.Entities.Create(ctx, dto.Merchant{
		Name:             "Acme North",
		ParentID:         parent.ID,
		MerchantTypeID:   retail.ID,
		MerchantStatusID: active.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, strPtr("Acme"), child.ParentName)
	assert.Equal(t, strPtr("Retail"), child.MerchantTypeName)
	assert.Equal(t, strPtr("Active"), child.MerchantStatusName)

	missing := int64(404)
	_, err = reg.Products.Entities.Create(ctx, dto.Product{Name: "Widget", MerchantID: &missing})
	assert.ErrorIs(t, err, store.ErrInvalidReference)

	err = reg.Merchants.Entities.Delete(ctx, *parent.ID)
	assert.ErrorIs(t, err, store.ErrReferenced)
	assert.ErrorContains(t, err, "merchants.parent_id")

	indexed, err := reg.Merchants.Entities.Indexed(ctx, *child.ID)
	require.NoError(t, err)
	assert.True(t, indexed)
}

func TestReindexCoversEveryEntityType(t *testing.T) {
	ctx := context.Background()
	a, err := Build(ctx, memoryConfig(t, config.MirrorMemory), nil)
	require.NoError(t, err)

	_, err = a.Registry.OrderStatuses.Entities.Create(ctx, dto.Lookup{Name: "Paid"})
	require.NoError(t, err)

	stats, err := a.Reindex(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stats, 8)
	assert.Equal(t, "merchant_types", stats[0].Entity)
	assert.Equal(t, "orders", stats[7].Entity)

	var indexed int
	for _, s := range stats {
		indexed += s.Indexed
	}
	assert.Equal(t, 1, indexed)
}

func TestNoMirror(t *testing.T) {
	ctx := context.Background()
	a, err := Build(ctx, memoryConfig(t, config.MirrorNone), nil)
	require.NoError(t, err)
	require.Len(t, a.Checks(), 1)
	assert.Equal(t, "db", a.Checks()[0].Name)
	assert.NoError(t, a.Checks()[0].Check(ctx))

	saved, err := a.Registry.ProductTypes.Entities.Create(ctx, dto.Lookup{Name: "Digital"})
	require.NoError(t, err)

	indexed, err := a.Registry.ProductTypes.Entities.Indexed(ctx, *saved.ID)
	require.NoError(t, err)
	assert.False(t, indexed)

	page, err := a.Registry.ProductTypes.Entities.Search(ctx, "digital", store.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.NoError(t, a.Close(ctx))
}

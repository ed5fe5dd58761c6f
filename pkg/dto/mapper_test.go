package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/model"
)

func ptr[T any](v T) *T { return &v }

func TestMerchantRoundTrip(t *testing.T) {
	created := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	in := Merchant{
		ID:               ptr(int64(3)),
		Name:             "Acme",
		Code:             ptr("AC-1"),
		Level:            ptr(1),
		CreatedAt:        &created,
		ParentID:         ptr(int64(1)),
		MerchantTypeID:   ptr(int64(2)),
		MerchantStatusID: nil,
	}

	var m MerchantMapper
	e := m.ToEntity(in)
	require.NotNil(t, e.Parent)
	assert.Equal(t, int64(1), e.Parent.ID)
	assert.Equal(t, int64(2), e.MerchantType.ID)
	assert.Nil(t, e.MerchantStatus)

	out := m.ToDTO(e)
	assert.Equal(t, in, out)
}

func TestMerchantToDTOCopiesLoadedNames(t *testing.T) {
	e := model.Merchant{
		ID:             5,
		Name:           "Child",
		ParentID:       ptr(int64(1)),
		Parent:         &model.Merchant{ID: 1, Name: "Root"},
		MerchantTypeID: ptr(int64(2)),
		MerchantType:   &model.MerchantType{Lookup: model.Lookup{ID: 2, Name: "Wholesale"}},
	}

	d := MerchantMapper{}.ToDTO(e)
	assert.Equal(t, "Root", *d.ParentName)
	assert.Equal(t, "Wholesale", *d.MerchantTypeName)
	assert.Nil(t, d.MerchantStatusName)
}

func TestNewEntityHasNoIdentity(t *testing.T) {
	e := ProductMapper{}.ToEntity(Product{Name: "Widget"})
	assert.Zero(t, e.ID)
	assert.Nil(t, ProductMapper{}.ToDTO(e).ID)
}

func TestProductAndOrderRoundTrip(t *testing.T) {
	p := Product{ID: ptr(int64(9)), Name: "Widget", Price: ptr(int64(1250)), Stock: ptr(4), MerchantID: ptr(int64(3))}
	assert.Equal(t, p, ProductMapper{}.ToDTO(ProductMapper{}.ToEntity(p)))

	o := Order{ID: ptr(int64(2)), OrderNo: "SO-1", Quantity: ptr(2), ProductID: ptr(int64(9)), OrderStatusID: ptr(int64(1))}
	assert.Equal(t, o, OrderMapper{}.ToDTO(OrderMapper{}.ToEntity(o)))
}

func TestLookupMapper(t *testing.T) {
	in := Lookup{ID: ptr(int64(4)), Name: "Active", Description: ptr("open for business")}
	e := MerchantStatusMapper.ToEntity(in)
	assert.Equal(t, "merchant_statuses", e.TableName())
	assert.Equal(t, int64(4), e.GetID())
	assert.Equal(t, in, MerchantStatusMapper.ToDTO(e))
}

func TestFromIDNil(t *testing.T) {
	assert.Nil(t, model.MerchantFromID(nil))
	assert.Nil(t, model.OrderStatusFromID(nil))
}

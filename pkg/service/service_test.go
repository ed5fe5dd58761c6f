package service

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/dto"
	mirrormemory "github.com/doodlesbykumbi/merchant-in-go/pkg/mirror/memory"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/model"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store/memory"
)

func ptr[T any](v T) *T { return &v }

// MockIndex is a mirror.Index driven by testify expectations.
type MockIndex[D any] struct {
	mock.Mock
}

func (m *MockIndex[D]) Save(ctx context.Context, id int64, doc D) error {
	return m.Called(id, doc).Error(0)
}

func (m *MockIndex[D]) Delete(ctx context.Context, id int64) error {
	return m.Called(id).Error(0)
}

func (m *MockIndex[D]) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockIndex[D]) FindByID(ctx context.Context, id int64) (D, error) {
	args := m.Called(id)
	return args.Get(0).(D), args.Error(1)
}

func (m *MockIndex[D]) Search(ctx context.Context, query string, page store.PageRequest) (store.Page[D], error) {
	args := m.Called(query, page)
	return args.Get(0).(store.Page[D]), args.Error(1)
}

func (m *MockIndex[D]) IDs(ctx context.Context) ([]int64, error) {
	args := m.Called()
	return args.Get(0).([]int64), args.Error(1)
}

// ServiceSuite runs the services over in-memory stores and mirrors.
type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	registry *Registry
	stores   Stores
	indexes  Indexes
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.stores = Stores{
		MerchantTypes:    memory.NewRepository[model.MerchantType](),
		MerchantStatuses: memory.NewRepository[model.MerchantStatus](),
		ProductTypes:     memory.NewRepository[model.ProductType](),
		ProductStatuses:  memory.NewRepository[model.ProductStatus](),
		OrderStatuses:    memory.NewRepository[model.OrderStatus](),
		Merchants:        memory.NewRepository[model.Merchant](),
		Products:         memory.NewRepository[model.Product](),
		Orders:           memory.NewRepository[model.Order](),
	}
	s.indexes = Indexes{
		MerchantTypes: mirrormemory.NewIndex[dto.Lookup](),
		Merchants:     mirrormemory.NewIndex[dto.Merchant](),
		Products:      mirrormemory.NewIndex[dto.Product](),
	}
	s.registry = NewRegistry(s.stores, s.indexes, zerolog.Nop())
}

func (s *ServiceSuite) merchants() *EntityService[model.Merchant, dto.Merchant] {
	return s.registry.Merchants.Entities
}

func (s *ServiceSuite) TestSaveThenFindOne() {
	saved, err := s.merchants().Save(s.ctx, dto.Merchant{Name: "Acme", Level: ptr(1)})
	s.Require().NoError(err)
	s.Require().NotNil(saved.ID)

	found, err := s.merchants().FindOne(s.ctx, *saved.ID)
	s.Require().NoError(err)
	s.Equal(saved, found)

	indexed, err := s.merchants().Indexed(s.ctx, *saved.ID)
	s.Require().NoError(err)
	s.True(indexed)
}

func (s *ServiceSuite) TestCreateRejectsIdentity() {
	_, err := s.merchants().Create(s.ctx, dto.Merchant{ID: ptr(int64(4)), Name: "Acme"})
	s.ErrorIs(err, store.ErrIDExists)
}

func (s *ServiceSuite) TestUpdate() {
	saved, err := s.merchants().Create(s.ctx, dto.Merchant{Name: "Acme"})
	s.Require().NoError(err)

	_, err = s.merchants().Update(s.ctx, *saved.ID, dto.Merchant{Name: "No id"})
	s.ErrorIs(err, ErrInvalidID)

	_, err = s.merchants().Update(s.ctx, *saved.ID+1, saved)
	s.ErrorIs(err, ErrInvalidID)

	_, err = s.merchants().Update(s.ctx, 99, dto.Merchant{ID: ptr(int64(99)), Name: "Ghost"})
	s.ErrorIs(err, store.ErrNotFound)

	_, err = s.merchants().Update(s.ctx, 0, dto.Merchant{ID: ptr(int64(0)), Name: "Ghost"})
	s.ErrorIs(err, store.ErrNotFound)
	_, err = s.merchants().Save(s.ctx, dto.Merchant{ID: ptr(int64(0)), Name: "Ghost"})
	s.ErrorIs(err, store.ErrNotFound)
	n, err := s.registry.Merchants.Queries.CountByCriteria(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	saved.Name = "Acme Corp"
	updated, err := s.merchants().Update(s.ctx, *saved.ID, saved)
	s.Require().NoError(err)
	s.Equal("Acme Corp", updated.Name)

	page, err := s.merchants().Search(s.ctx, "corp", store.Unpaged())
	s.Require().NoError(err)
	s.Len(page.Content, 1)
}

func (s *ServiceSuite) TestDeleteTwice() {
	saved, err := s.merchants().Save(s.ctx, dto.Merchant{Name: "Acme"})
	s.Require().NoError(err)

	s.Require().NoError(s.merchants().Delete(s.ctx, *saved.ID))
	s.Require().NoError(s.merchants().Delete(s.ctx, *saved.ID))

	_, err = s.merchants().FindOne(s.ctx, *saved.ID)
	s.ErrorIs(err, store.ErrNotFound)

	indexed, err := s.merchants().Indexed(s.ctx, *saved.ID)
	s.Require().NoError(err)
	s.False(indexed)
}

func (s *ServiceSuite) TestDeleteRefusedWhileReferenced() {
	kind, err := s.registry.MerchantTypes.Entities.Save(s.ctx, dto.Lookup{Name: "Retail"})
	s.Require().NoError(err)
	parent, err := s.merchants().Save(s.ctx, dto.Merchant{Name: "Parent", MerchantTypeID: kind.ID})
	s.Require().NoError(err)
	child, err := s.merchants().Save(s.ctx, dto.Merchant{Name: "Child", ParentID: parent.ID})
	s.Require().NoError(err)

	err = s.registry.MerchantTypes.Entities.Delete(s.ctx, *kind.ID)
	s.ErrorIs(err, store.ErrReferenced)

	err = s.merchants().Delete(s.ctx, *parent.ID)
	s.ErrorIs(err, store.ErrReferenced)
	s.Contains(err.Error(), "parent_id")

	s.Require().NoError(s.merchants().Delete(s.ctx, *child.ID))
	s.Require().NoError(s.merchants().Delete(s.ctx, *parent.ID))
	s.Require().NoError(s.registry.MerchantTypes.Entities.Delete(s.ctx, *kind.ID))
}

func (s *ServiceSuite) TestCriteriaScenario() {
	_, err := s.merchants().Save(s.ctx, dto.Merchant{Name: "Acme", Level: ptr(1)})
	s.Require().NoError(err)
	_, err = s.merchants().Save(s.ctx, dto.Merchant{Name: "Acme", Level: ptr(2)})
	s.Require().NoError(err)
	_, err = s.merchants().Save(s.ctx, dto.Merchant{Name: "Globex"})
	s.Require().NoError(err)

	queries := s.registry.Merchants.Queries

	c, err := ParseMerchantCriteria(url.Values{"level.equals": {"1"}})
	s.Require().NoError(err)
	found, err := queries.FindByCriteria(s.ctx, c)
	s.Require().NoError(err)
	s.Len(found, 1)

	c, err = ParseMerchantCriteria(url.Values{"name.in": {"Acme"}})
	s.Require().NoError(err)
	found, err = queries.FindByCriteria(s.ctx, c)
	s.Require().NoError(err)
	s.Len(found, 2)

	all, err := queries.FindByCriteria(s.ctx, nil)
	s.Require().NoError(err)
	s.Len(all, 3)

	n, err := queries.CountByCriteria(s.ctx, &MerchantCriteria{})
	s.Require().NoError(err)
	s.Equal(int64(3), n)

	page, err := queries.FindPageByCriteria(s.ctx, &MerchantCriteria{
		Name: &criteria.StringFilter{Contains: ptr("ac")},
	}, store.PageRequest{Page: 0, Size: 1, Sort: []store.Order{{Column: "level", Descending: true}}})
	s.Require().NoError(err)
	s.Equal(int64(2), page.Total)
	s.Require().Len(page.Content, 1)
	s.Equal(2, *page.Content[0].Level)
}

func (s *ServiceSuite) TestReindex() {
	ix := s.indexes.Merchants
	for _, name := range []string{"A", "B", "C"} {
		_, err := s.merchants().Save(s.ctx, dto.Merchant{Name: name})
		s.Require().NoError(err)
	}
	// drift: one stale document and one missing document
	s.Require().NoError(ix.Save(s.ctx, 42, dto.Merchant{ID: ptr(int64(42)), Name: "Stale"}))
	s.Require().NoError(ix.Delete(s.ctx, 2))

	stats, err := s.merchants().Reindex(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal(ReindexStats{Entity: "merchants", Indexed: 3, Removed: 1}, stats)

	ids, err := ix.IDs(s.ctx)
	s.Require().NoError(err)
	s.Equal([]int64{1, 2, 3}, ids)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func TestMirrorFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	ix := new(MockIndex[dto.Lookup])
	svc := NewEntityService("order_statuses", memory.NewRepository[model.OrderStatus](),
		dto.OrderStatusMapper, ix, nil, zerolog.New(&logs))

	ix.On("Save", int64(1), mock.Anything).Return(errors.New("mirror down"))
	ix.On("Delete", int64(1)).Return(errors.New("mirror down"))

	saved, err := svc.Save(ctx, dto.Lookup{Name: "Paid"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), *saved.ID)

	found, err := svc.FindOne(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Paid", found.Name)

	require.NoError(t, svc.Delete(ctx, 1))
	ix.AssertExpectations(t)

	assert.Contains(t, logs.String(), `"entity":"order_statuses"`)
	assert.Contains(t, logs.String(), "mirror write failed")
}

func TestReindexCountsMirrorFailures(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[model.OrderStatus]()
	for _, name := range []string{"Paid", "Shipped"} {
		_, err := repo.Save(ctx, model.OrderStatus{Lookup: model.Lookup{Name: name}})
		require.NoError(t, err)
	}

	ix := new(MockIndex[dto.Lookup])
	ix.On("Save", int64(1), mock.Anything).Return(nil)
	ix.On("Save", int64(2), mock.Anything).Return(errors.New("timeout"))
	ix.On("IDs").Return([]int64{1}, nil)

	svc := NewEntityService("order_statuses", repo, dto.OrderStatusMapper, ix, nil, zerolog.Nop())
	stats, err := svc.Reindex(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Indexed)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 0, stats.Removed)
	ix.AssertExpectations(t)
}

func TestParseCriteriaErrors(t *testing.T) {
	_, err := ParseOrderCriteria(url.Values{
		"quantity.greaterThan": {"many"},
		"orderNo.lessThan":     {"x"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, criteria.ErrInvalidCriteria)
}

func TestCriteriaPredicateOrder(t *testing.T) {
	c := &ProductCriteria{
		MerchantID: &criteria.LongFilter{Filter: criteria.Filter[int64]{Equals: ptr(int64(3))}},
		Name:       &criteria.StringFilter{Contains: ptr("tea")},
	}
	p := c.Predicate()
	require.Len(t, p.Conditions, 2)
	assert.Equal(t, "name", p.Conditions[0].Column)
	assert.Equal(t, "merchant_id", p.Conditions[1].Column)

	var nilCriteria *ProductCriteria
	assert.True(t, nilCriteria.Predicate().IsEmpty())
}

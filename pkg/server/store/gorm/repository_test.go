package gorm

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/model"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

func ptr[T any](v T) *T { return &v }

func TestRepositoryFindByID(t *testing.T) {
	m := newMockDB(t)
	repo := NewRepository[model.MerchantStatus](m.GormDB)

	m.Mock.ExpectQuery(`SELECT \* FROM "merchant_statuses" WHERE id = \$1`).
		WillReturnRows(lookupRows().AddRow(3, "Active", "open"))

	status, err := repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), status.ID)
	assert.Equal(t, "Active", status.Name)
	assert.Equal(t, "open", *status.Description)
	m.verify(t)
}

func TestRepositoryFindByIDNotFound(t *testing.T) {
	m := newMockDB(t)
	repo := NewRepository[model.MerchantStatus](m.GormDB)

	m.Mock.ExpectQuery(`SELECT \* FROM "merchant_statuses" WHERE id = \$1`).
		WillReturnRows(lookupRows())

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
	m.verify(t)
}

func TestRepositorySaveInserts(t *testing.T) {
	m := newMockDB(t)
	repo := NewRepository[model.MerchantStatus](m.GormDB)

	m.Mock.ExpectBegin()
	m.Mock.ExpectQuery(`INSERT INTO "merchant_statuses" \("name","description"\) VALUES \(\$1,\$2\) RETURNING "id"`).
		WithArgs("Active", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	m.Mock.ExpectCommit()
	m.Mock.ExpectQuery(`SELECT \* FROM "merchant_statuses" WHERE id = \$1`).
		WillReturnRows(lookupRows().AddRow(7, "Active", nil))

	saved, err := repo.Save(context.Background(), model.MerchantStatus{Lookup: model.Lookup{Name: "Active"}})
	require.NoError(t, err)
	assert.Equal(t, int64(7), saved.ID)
	m.verify(t)
}

func TestRepositorySaveOverwrites(t *testing.T) {
	m := newMockDB(t)
	repo := NewRepository[model.MerchantStatus](m.GormDB)

	m.Mock.ExpectQuery(`SELECT count\(\*\) FROM "merchant_statuses" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	m.Mock.ExpectBegin()
	m.Mock.ExpectExec(`UPDATE "merchant_statuses" SET "name"=\$1,"description"=\$2 WHERE "id" = \$3`).
		WithArgs("Closed", nil, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	m.Mock.ExpectCommit()
	m.Mock.ExpectQuery(`SELECT \* FROM "merchant_statuses" WHERE id = \$1`).
		WillReturnRows(lookupRows().AddRow(7, "Closed", nil))

	saved, err := repo.Save(context.Background(), model.MerchantStatus{Lookup: model.Lookup{ID: 7, Name: "Closed"}})
	require.NoError(t, err)
	assert.Equal(t, "Closed", saved.Name)
	assert.Nil(t, saved.Description)
	m.verify(t)
}

func TestRepositorySaveMissingIdentity(t *testing.T) {
	m := newMockDB(t)
	repo := NewRepository[model.MerchantStatus](m.GormDB)

	m.Mock.ExpectQuery(`SELECT count\(\*\) FROM "merchant_statuses" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := repo.Save(context.Background(), model.MerchantStatus{Lookup: model.Lookup{ID: 99, Name: "Ghost"}})
	assert.ErrorIs(t, err, store.ErrNotFound)
	m.verify(t)
}

func TestRepositoryDeleteIsIdempotent(t *testing.T) {
	m := newMockDB(t)
	repo := NewRepository[model.MerchantStatus](m.GormDB)

	for i := 0; i < 2; i++ {
		m.Mock.ExpectBegin()
		m.Mock.ExpectExec(`DELETE FROM "merchant_statuses"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		m.Mock.ExpectCommit()
	}

	require.NoError(t, repo.DeleteByID(context.Background(), 5))
	require.NoError(t, repo.DeleteByID(context.Background(), 5))
	m.verify(t)
}

func TestRepositoryFindByPredicate(t *testing.T) {
	m := newMockDB(t)
	repo := NewRepository[model.MerchantStatus](m.GormDB)

	p := criteria.And(
		(&criteria.StringFilter{Filter: criteria.Filter[string]{Equals: ptr("Active")}}).On("name"),
		(&criteria.StringFilter{Contains: ptr("open")}).On("description"),
	)

	m.Mock.ExpectQuery(`SELECT count\(\*\) FROM "merchant_statuses" WHERE "name" = \$1 AND UPPER\("description"\) LIKE \$2`).
		WithArgs("Active", "%OPEN%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	m.Mock.ExpectQuery(`SELECT \* FROM "merchant_statuses" WHERE "name" = \$1 AND UPPER\("description"\) LIKE \$2 ORDER BY "name" DESC,"id"`).
		WillReturnRows(lookupRows().AddRow(1, "Active", "open all day").AddRow(2, "Active", "opening soon"))

	page, err := repo.FindBy(context.Background(), p, store.PageRequest{
		Page: 0,
		Size: 2,
		Sort: []store.Order{{Column: "name", Descending: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, 2, page.TotalPages())
	m.verify(t)
}

func TestRepositoryCountByEmptyPredicate(t *testing.T) {
	m := newMockDB(t)
	repo := NewRepository[model.MerchantStatus](m.GormDB)

	m.Mock.ExpectQuery(`SELECT count\(\*\) FROM "merchant_statuses"$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	n, err := repo.CountBy(context.Background(), criteria.Predicate{})
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	m.verify(t)
}

func TestExpressionSQL(t *testing.T) {
	m := newMockDB(t)
	db := m.GormDB.Session(&gorm.Session{DryRun: true})

	p := criteria.And(
		(&criteria.LongFilter{Filter: criteria.Filter[int64]{In: []int64{1, 2}, NotIn: []int64{3, 4}}}).On("id"),
		(&criteria.StringFilter{Filter: criteria.Filter[string]{Specified: ptr(false)}}).On("description"),
		(&criteria.LongFilter{GreaterThan: ptr(int64(5))}).On("id"),
		(&criteria.StringFilter{Contains: ptr("a_b")}).On("name"),
	)

	var rows []model.MerchantStatus
	stmt := Where(db.Model(&model.MerchantStatus{}), p).Find(&rows).Statement

	assert.Equal(t,
		`SELECT * FROM "merchant_statuses" WHERE "id" IN ($1,$2) AND "id" NOT IN ($3,$4) AND "description" IS NULL AND "id" > $5 AND UPPER("name") LIKE $6`,
		stmt.SQL.String())
	assert.Equal(t, []interface{}{int64(1), int64(2), int64(3), int64(4), int64(5), `%A\_B%`}, stmt.Vars)
}

func TestTranslateWriteError(t *testing.T) {
	assert.ErrorIs(t, translateWriteError(gorm.ErrForeignKeyViolated), store.ErrInvalidReference)

	other := errors.New("connection reset")
	assert.Equal(t, other, translateWriteError(other))
}

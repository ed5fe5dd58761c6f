package gorm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/db"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/model"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

// PostgresSuite runs the repositories against a migrated PostgreSQL container.
type PostgresSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	dbURL     string
	db        *gorm.DB
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("merchant_test"),
		tcpostgres.WithUsername("merchant"),
		tcpostgres.WithPassword("merchant"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "5432")
	s.Require().NoError(err)
	s.dbURL = fmt.Sprintf("postgres://merchant:merchant@%s:%s/merchant_test?sslmode=disable", host, port.Port())

	migrationsDir, err := filepath.Abs("../../../../db/migrations")
	s.Require().NoError(err)
	s.T().Setenv(db.MigrationsPathEnv, migrationsDir)

	m, err := db.NewMigrator(s.dbURL)
	s.Require().NoError(err)
	changed, err := m.Up()
	s.Require().NoError(err)
	s.True(changed)
	s.Require().NoError(m.Close())

	s.db, err = db.Connect(db.Config{URL: s.dbURL})
	s.Require().NoError(err)
}

func (s *PostgresSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresSuite) SetupTest() {
	s.Require().NoError(s.db.Exec(`TRUNCATE merchant_types, merchant_statuses, product_types,
		product_statuses, order_statuses, merchants, products, orders RESTART IDENTITY CASCADE`).Error)
}

func (s *PostgresSuite) TestMerchantWithReferences() {
	types := NewRepository[model.MerchantType](s.db)
	merchants := NewRepository[model.Merchant](s.db)

	retail, err := types.Save(s.ctx, model.MerchantType{Lookup: model.Lookup{Name: "Retail"}})
	s.Require().NoError(err)

	level := 1
	saved, err := merchants.Save(s.ctx, model.Merchant{
		Name:           "Acme",
		Level:          &level,
		MerchantTypeID: &retail.ID,
		MerchantType:   model.MerchantTypeFromID(&retail.ID),
	})
	s.Require().NoError(err)
	s.Require().NotNil(saved.MerchantType)
	s.Equal("Retail", saved.MerchantType.Name)

	// the stub must not overwrite the referenced row
	got, err := types.FindByID(s.ctx, retail.ID)
	s.Require().NoError(err)
	s.Equal("Retail", got.Name)

	page, err := merchants.FindBy(s.ctx,
		criteria.Where("level", criteria.OpEquals, 1), store.PageRequest{Size: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), page.Total)

	page, err = merchants.FindBy(s.ctx,
		criteria.Where("level", criteria.OpEquals, 2), store.PageRequest{Size: 10})
	s.Require().NoError(err)
	s.Empty(page.Content)

	page, err = merchants.FindBy(s.ctx,
		criteria.Where("name", criteria.OpContains, "cm"), store.Unpaged())
	s.Require().NoError(err)
	s.Len(page.Content, 1)
}

func (s *PostgresSuite) TestForeignKeys() {
	types := NewRepository[model.MerchantType](s.db)
	merchants := NewRepository[model.Merchant](s.db)

	missing := int64(404)
	_, err := merchants.Save(s.ctx, model.Merchant{Name: "Ghost", MerchantTypeID: &missing})
	s.ErrorIs(err, store.ErrInvalidReference)

	retail, err := types.Save(s.ctx, model.MerchantType{Lookup: model.Lookup{Name: "Retail"}})
	s.Require().NoError(err)
	_, err = merchants.Save(s.ctx, model.Merchant{Name: "Acme", MerchantTypeID: &retail.ID})
	s.Require().NoError(err)

	err = types.DeleteByID(s.ctx, retail.ID)
	s.ErrorIs(err, store.ErrReferenced)
}

func (s *PostgresSuite) TestOverwriteAndDelete() {
	statuses := NewRepository[model.OrderStatus](s.db)

	saved, err := statuses.Save(s.ctx, model.OrderStatus{Lookup: model.Lookup{Name: "Paid"}})
	s.Require().NoError(err)

	saved.Name = "Settled"
	_, err = statuses.Save(s.ctx, saved)
	s.Require().NoError(err)

	_, err = statuses.Save(s.ctx, saved.WithID(saved.ID+100))
	s.ErrorIs(err, store.ErrNotFound)

	s.Require().NoError(statuses.DeleteByID(s.ctx, saved.ID))
	s.Require().NoError(statuses.DeleteByID(s.ctx, saved.ID))
	_, err = statuses.FindByID(s.ctx, saved.ID)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *PostgresSuite) TestMigrationsRollBack() {
	m, err := db.NewMigrator(s.dbURL)
	s.Require().NoError(err)
	defer func() { _ = m.Close() }()

	version, dirty, err := m.Version()
	s.Require().NoError(err)
	s.False(dirty)

	files, err := db.MigrationFiles()
	s.Require().NoError(err)
	s.Require().NotEmpty(files)
	s.Contains(files[len(files)-1], fmt.Sprint(version))

	s.Require().NoError(m.Down(1))
	_, err = m.Up()
	s.Require().NoError(err)
}

func TestPostgresSuite(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TEST=1 to run.")
	}
	suite.Run(t, new(PostgresSuite))
}

func TestLikePatternEscapes(t *testing.T) {
	assert.Equal(t, `%50\%\_OFF%`, likePattern("50%_off"))
	assert.Equal(t, "%%", likePattern(nil))
	require.Equal(t, `%A\\B%`, likePattern(`a\b`))
}

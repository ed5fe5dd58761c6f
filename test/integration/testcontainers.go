package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/config"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/db"
)

// tables in delete order
var tables = []string{
	"orders", "products", "merchants",
	"order_statuses", "product_statuses", "product_types",
	"merchant_statuses", "merchant_types",
}

// TestContext holds the resources shared by every scenario
type TestContext struct {
	Config      *config.MerchantConfig
	DB          *gorm.DB
	DatabaseURL string
	container   testcontainers.Container
}

// NewTestContext prepares the primary store. Without INTEGRATION_TEST each
// scenario gets fresh in-memory stores; with it, a PostgreSQL container is
// started and migrated once.
func NewTestContext(ctx context.Context, t *testing.T) (*TestContext, error) {
	t.Setenv("MERCHANT_CONFIG_PATH", t.TempDir())
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Mirror = config.MirrorMemory
	cfg.PageSizeDefault = 20

	tc := &TestContext{Config: cfg}
	if os.Getenv("INTEGRATION_TEST") == "" {
		log.Println("Using in-memory primary store")
		cfg.PrimaryStore = config.StoreMemory
		return tc, nil
	}

	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	t.Setenv(db.MigrationsPathEnv, filepath.Join(projectRoot, "db", "migrations"))

	pgContainer, err := tcpostgres.Run(ctx,
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
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}
	tc.container = pgContainer

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tc.Close(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}
	tc.DatabaseURL = connStr

	m, err := db.NewMigrator(connStr)
	if err != nil {
		tc.Close(ctx)
		return nil, err
	}
	_, err = m.Up()
	_ = m.Close()
	if err != nil {
		tc.Close(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	tc.DB, err = db.Connect(db.Config{URL: connStr})
	if err != nil {
		tc.Close(ctx)
		return nil, err
	}
	cfg.PrimaryStore = config.StorePostgres
	log.Println("Using PostgreSQL primary store")
	return tc, nil
}

// Reset empties every table and restarts the identity sequences.
func (tc *TestContext) Reset() error {
	if tc.DB == nil {
		return nil
	}
	for _, table := range tables {
		if err := tc.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			return err
		}
	}
	return nil
}

// Close terminates the container, if any
func (tc *TestContext) Close(ctx context.Context) {
	if tc.DB != nil {
		if sqlDB, err := tc.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if tc.container != nil {
		_ = tc.container.Terminate(ctx)
	}
}

func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}

package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

// HealthStore provides health check operations using GORM
type HealthStore struct {
	db *gorm.DB
}

// NewHealthStore creates a new HealthStore
func NewHealthStore(db *gorm.DB) *HealthStore {
	return &HealthStore{db: db}
}

// CheckConnectivity runs a trivial query against the primary database
func (s *HealthStore) CheckConnectivity() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()
	return s.db.WithContext(ctx).Exec("SELECT 1").Error
}

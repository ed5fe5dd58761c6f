package db

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds database connection configuration
type Config struct {
	// URL is the database connection URL (defaults to DATABASE_URL env var)
	URL string

	// LogLevel is the GORM log level: silent, error, warn or info
	LogLevel string

	// Logger receives GORM log lines. Defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Connect establishes a database connection.
// If no URL is provided, it reads from DATABASE_URL environment variable.
// Driver errors are translated so that foreign key violations match
// gorm.ErrForeignKeyViolated.
func Connect(cfg Config) (*gorm.DB, error) {
	dbURL := cfg.URL
	if dbURL == "" {
		dbURL = URL()
	}
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN:                  dbURL,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}),
		&gorm.Config{
			Logger:         NewLogger(cfg.Logger, cfg.LogLevel),
			TranslateError: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// gormWriter passes GORM's formatted lines to zerolog. GORM filters by its
// own level, so every line arrives at info.
type gormWriter struct {
	l zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.l.Info().Msgf(format, args...)
}

// NewLogger returns a GORM logger writing through zerolog.
func NewLogger(l *zerolog.Logger, level string) logger.Interface {
	w := gormWriter{l: zerolog.Nop()}
	if l != nil {
		w.l = *l
	}
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  LogMode(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// LogMode maps a level name to a GORM log level. Unknown names are silent.
func LogMode(level string) logger.LogLevel {
	switch level {
	case "info":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	}
	return logger.Silent
}

// URL returns the database URL from environment.
// Returns empty string if DATABASE_URL is not set.
func URL() string {
	return os.Getenv("DATABASE_URL")
}

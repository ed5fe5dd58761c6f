// Package surreal provides a mirror.Index stored in SurrealDB.
//
// Each entity type gets one table. A document is the record
// <table>:<entity id> holding the entity id, its searchable text and the
// transfer object encoded as JSON:
//
//	{ entity_id: 12, text: "acme 1 ...", doc: "{\"id\":12,\"name\":\"Acme\",...}" }
//
// Search ANDs string::contains tests of the query terms against text.
package surreal

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
)

// Config holds the connection settings for SurrealDB
type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// Client is a SurrealDB connection shared by the indexes of every entity type.
type Client struct {
	db *surrealdb.DB
}

// Connect opens a connection, signs in when credentials are set and selects
// the namespace and database.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if cfg.Username != "" && cfg.Password != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": cfg.Username,
			"pass": cfg.Password,
		}); err != nil {
			_ = db.Close(ctx)
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("failed to use namespace/database: %w", err)
	}

	return &Client{db: db}, nil
}

// Close closes the connection
func (c *Client) Close(ctx context.Context) error {
	return c.db.Close(ctx)
}

// Ping runs a trivial query.
func (c *Client) Ping(ctx context.Context) error {
	_, err := query[bool](ctx, c.db, "RETURN true", nil)
	return err
}

// query runs a single-statement query and returns the result of that statement.
func query[T any](ctx context.Context, db *surrealdb.DB, sql string, vars map[string]any) (T, error) {
	var zero T
	res, err := surrealdb.Query[T](ctx, db, sql, vars)
	if err != nil {
		return zero, err
	}
	if res == nil || len(*res) == 0 {
		return zero, nil
	}
	r := (*res)[0]
	if r.Status != "OK" {
		return zero, fmt.Errorf("query failed with status %s", r.Status)
	}
	return r.Result, nil
}

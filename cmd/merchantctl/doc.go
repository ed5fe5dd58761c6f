// Command merchantctl runs the merchant service and its maintenance tasks.
//
// The service manages merchants, products and orders together with their
// type and status lookup tables. PostgreSQL is the source of truth; every
// write is mirrored into a search index (SurrealDB or in memory) that serves
// the free-text search endpoints.
//
// # Quick Start
//
//	# Create or upgrade the schema
//	merchantctl db migrate
//
//	# Start the server
//	merchantctl server
//
//	# Rebuild the search index from PostgreSQL
//	merchantctl reindex
//
//	# Validate merchant.yml and have the running server re-read it
//	merchantctl configuration apply
//
//	# Archive a database dump and the configuration
//	merchantctl export --out-dir /backup
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - MERCHANT_CONFIG_PATH: Directory holding merchant.yml (default: /etc/merchant/config)
//   - MERCHANT_PRIMARY_STORE: postgres or memory
//   - MERCHANT_MIRROR: surrealdb, memory or none
//   - MERCHANT_SURREAL_URL: SurrealDB endpoint, e.g. ws://localhost:8000/rpc
//   - MERCHANT_LOG_LEVEL: Log level (debug, info, warn, error)
//   - BIND_ADDRESS, PORT: Server listen address (default: 0.0.0.0:8080)
package main

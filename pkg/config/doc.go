// Package config provides configuration management for the merchant server.
//
// Values are resolved in order: built-in defaults, then the YAML file
// $MERCHANT_CONFIG_PATH/merchant.yml (default /etc/merchant/config), then
// MERCHANT_* environment variables. The source of every attribute is
// tracked and shown by "merchantctl configuration show".
//
// # Key Configuration Options
//
//   - MERCHANT_PRIMARY_STORE: postgres or memory
//   - MERCHANT_MIRROR: surrealdb, memory or none
//   - MERCHANT_SURREAL_URL: SurrealDB endpoint
//   - MERCHANT_LOG_LEVEL: Logging verbosity, applied live by Watch
//   - DATABASE_URL: Database connection
//   - PORT: Server listen port
package config

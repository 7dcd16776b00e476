// Package config provides configuration management for the roster-manager.
//
// Settings come from environment variables, optionally seeded from a .env
// file. Every field declares its default in a `default:"..."` struct tag;
// nested keys map to upper-case environment names joined by underscores
// (store.driver is STORE_DRIVER).
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Log: level and encoding
//   - Database: MySQL or SQLite connection for the database store
//   - Storage: MinIO credentials and bucket for the object store
//   - Store: bucket store driver (memory, database, object)
//   - Reconcile: name collation locale and dataset cache TTL
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Store.Driver)
package config

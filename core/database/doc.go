// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL or PostgreSQL (production) or SQLite (tests, single-node
// deployments) connections from the application's configuration. The database
// backend of the bucket store (core/kv) keeps its entries here.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns for both dialects. The `store check`
// command uses it to verify that the bucket table has the expected shape.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "kv_entries")
package database

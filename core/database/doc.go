// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL or PostgreSQL (production) or SQLite (local runs and tests)
// from the application's configuration, and to release the pool at the end of a run.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table so the check command can confirm
// that the phone numbers table carries every column the sync writes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer database.Close(db)
package database

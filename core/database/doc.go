// Package database handles database connections and schema inspection for
// the shipment mirror.
//
// # Connect
//
// Connect opens a GORM connection for the mysql, postgres or sqlite driver
// and verifies it with a ping bounded by TimeoutSeconds. ConnectMongo does
// the same for the mongodb driver and returns the configured database.
//
// # Schema Inspection
//
// GetTableColumns reads the live column list (SHOW COLUMNS, PRAGMA
// table_info or information_schema depending on the dialect).
// MissingColumns compares it with the columns a model expects and backs the
// readiness check.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "shipments", []string{"shipment_id"})
package database

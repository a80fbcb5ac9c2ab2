// Package database opens the gorm connection used to persist reconciliation
// runs and lead status updates.
//
// MySQL is the production driver; sqlite (a file path or ":memory:") serves
// local runs and tests. The inspector helpers read live column definitions so
// callers can verify a schema after migration.
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Persistence disabled", zap.Error(err))
//	}
package database

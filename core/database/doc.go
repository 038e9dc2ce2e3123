// Package database handles the optional run-history database connection.
//
// It wraps GORM to configure a MySQL connection from the application's
// configuration. The pipeline itself never requires a database: when no
// connection is available, runs simply aren't recorded.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("run history disabled", zap.Error(err))
//	}
package database

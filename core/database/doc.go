// Package database handles the project database connection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that
// configures MySQL for deployments and sqlite for local projects and tests.
//
// # Connect
//
// The Connect function establishes a connection based on the configured
// driver. The database is an optional collaborator: without one the editor
// still serves storage-backed asset categories, only the script-graph
// category is unavailable.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("running without a project database", zap.Error(err))
//	}
package database

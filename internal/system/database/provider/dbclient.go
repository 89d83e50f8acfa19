// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"database/sql"
	"fmt"

	"github.com/perfectbrow/consent-api/internal/system/database"
	dbmodel "github.com/perfectbrow/consent-api/internal/system/database/model"
	"github.com/perfectbrow/consent-api/internal/system/log"
)

// DBClientInterface defines the interface for database clients.
type DBClientInterface interface {
	Query(query dbmodel.DBQueryInterface, args ...interface{}) ([]map[string]interface{}, error)
	Execute(query dbmodel.DBQueryInterface, args ...interface{}) (sql.Result, error)
	BeginTx() (dbmodel.TxInterface, error)
	DatabaseType() string
}

// dbClient is the sqlx-backed implementation of DBClientInterface.
type dbClient struct {
	db     *database.DB
	dbType string
}

// NewDBClient creates a new database client for the given connection.
func NewDBClient(db *database.DB, dbType string) DBClientInterface {
	return &dbClient{
		db:     db,
		dbType: dbType,
	}
}

// Query runs a read query and returns the result rows as column maps.
func (c *dbClient) Query(query dbmodel.DBQueryInterface, args ...interface{}) ([]map[string]interface{}, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBClient"))

	rows, err := c.db.Queryx(query.GetQuery(c.dbType), args...)
	if err != nil {
		logger.Error("Query failed", log.String("query_id", query.GetID()), log.Error(err))
		return nil, fmt.Errorf("query %s failed: %w", query.GetID(), err)
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("query %s scan failed: %w", query.GetID(), err)
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s iteration failed: %w", query.GetID(), err)
	}

	return results, nil
}

// Execute runs a write query.
func (c *dbClient) Execute(query dbmodel.DBQueryInterface, args ...interface{}) (sql.Result, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBClient"))

	result, err := c.db.Exec(query.GetQuery(c.dbType), args...)
	if err != nil {
		logger.Error("Execute failed", log.String("query_id", query.GetID()), log.Error(err))
		return nil, fmt.Errorf("execute %s failed: %w", query.GetID(), err)
	}
	return result, nil
}

// BeginTx starts a new transaction.
func (c *dbClient) BeginTx() (dbmodel.TxInterface, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return dbmodel.NewTx(tx), nil
}

// DatabaseType returns the configured database dialect.
func (c *dbClient) DatabaseType() string {
	return c.dbType
}

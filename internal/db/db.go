package db

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS client_storage (
	storage_key   TEXT PRIMARY KEY,
	storage_value TEXT NOT NULL,
	updated_at    TIMESTAMP NOT NULL
)`

// Open connects to postgres for postgres:// DSNs and to sqlite otherwise,
// then makes sure the storage table exists.
func Open(dsn string) (*sql.DB, error) {
	driver := DriverFor(dsn)
	if driver == "postgres" {
		log.Println("Using PostgreSQL client storage")
	} else {
		log.Println("Using SQLite client storage:", dsn)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	if driver == "sqlite" {
		// a :memory: database lives and dies with its connection
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create storage schema: %w", err)
	}
	return conn, nil
}

// DriverFor maps a storage DSN onto a registered database/sql driver name.
func DriverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

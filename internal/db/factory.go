package db

import (
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// FileName is the SQLite database created inside the configured storage directory.
const FileName = "LeetCode.sqlite"

// sqlDrivers maps the configured driver to the database/sql driver name.
// modernc.org/sqlite registers itself as "sqlite".
var sqlDrivers = map[string]string{
	"sqlite3":  "sqlite",
	"mysql":    "mysql",
	"postgres": "postgres",
}

// New opens and pings a database for the given driver and DSN.
// Supported drivers: sqlite3, mysql, postgres.
func New(driver, dsn string) (*sqlx.DB, error) {
	name, ok := sqlDrivers[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported DB driver %q: must be sqlite3, mysql, or postgres", driver)
	}

	conn, err := sqlx.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if driver == "sqlite3" {
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}
	return conn, nil
}

// SQLiteDSN creates dir if it does not exist and returns the DSN of the
// database file inside it, with foreign keys enforced on every connection.
func SQLiteDSN(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", nil
}

// Package migrations contains the dialect-aware schema migrations for the
// problem store.
package migrations

// dialect is set by the parent db package before migrations are applied.
var dialect string

// SetDialect configures the SQL dialect for Go migrations.
// Must be called before goose.Up. Valid values: "sqlite3", "postgres", "mysql".
func SetDialect(d string) {
	dialect = d
}

// runAll executes stmts in order, stopping at the first failure.
func runAll(exec func(string) error, stmts []string) error {
	for _, stmt := range stmts {
		if err := exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

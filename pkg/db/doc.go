// Package db is the parameterized-query helper exposed to dynamic scripts.
//
// It wraps database/sql with two registered drivers, "pgx" (PostgreSQL via
// github.com/jackc/pgx/v5/stdlib) and "mysql" (github.com/go-sql-driver/mysql),
// and adds CRUD helpers that quote identifiers and number placeholders for
// the active dialect. Values always travel as query arguments; only the
// caller-supplied WHERE fragments are spliced into the statement, with '?'
// placeholders rebound for PostgreSQL.
//
//	conn, err := db.Open(ctx, db.Config{Driver: "mysql", DSN: dsn})
//	res, err := conn.Insert(ctx, "users", map[string]any{"name": "ann"})
//	rows, err := conn.Query(ctx, "SELECT * FROM users WHERE id = ?", res.LastInsertID)
package db

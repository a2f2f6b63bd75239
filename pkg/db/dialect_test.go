package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeoblyv/spider/pkg/db"
)

func dialect(t *testing.T, driver string) db.Dialect {
	t.Helper()
	d, err := db.DialectFor(driver)
	require.NoError(t, err)
	return d
}

func TestDialectFor(t *testing.T) {
	t.Parallel()

	for driver, want := range map[string]string{
		"pgx":        db.DriverPostgres,
		"postgres":   db.DriverPostgres,
		"PostgreSQL": db.DriverPostgres,
		"mysql":      db.DriverMySQL,
		"mariadb":    db.DriverMySQL,
	} {
		assert.Equal(t, want, dialect(t, driver).Driver(), driver)
	}

	_, err := db.DialectFor("sqlite")
	assert.ErrorIs(t, err, db.ErrUnsupportedDriver)
}

func TestDialect_Quote(t *testing.T) {
	t.Parallel()

	my := dialect(t, "mysql")
	pg := dialect(t, "pgx")

	tests := []struct {
		in     string
		mysql  string
		pgx    string
		errMsg bool
	}{
		{in: "users", mysql: "`users`", pgx: `"users"`},
		{in: "public.users", mysql: "`public`.`users`", pgx: `"public"."users"`},
		{in: "we`ird", mysql: "`we``ird`", pgx: "\"we`ird\""},
		{in: `we"ird`, mysql: "`we\"ird`", pgx: `"we""ird"`},
		{in: "", errMsg: true},
		{in: "a..b", errMsg: true},
	}

	for _, tt := range tests {
		got, err := my.Quote(tt.in)
		if tt.errMsg {
			assert.ErrorIs(t, err, db.ErrEmptyIdentifier, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.mysql, got)

		got, err = pg.Quote(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.pgx, got)
	}
}

func TestDialect_Rebind(t *testing.T) {
	t.Parallel()

	pg := dialect(t, "pgx")
	assert.Equal(t, "id = $1 AND name = $2", pg.Rebind("id = ? AND name = ?", 0))
	assert.Equal(t, "id = $3", pg.Rebind("id = ?", 2))
	assert.Equal(t, "note = 'why?' AND id = $1", pg.Rebind("note = 'why?' AND id = ?", 0))
	assert.Equal(t, "id = 1", pg.Rebind("id = 1", 0))

	my := dialect(t, "mysql")
	assert.Equal(t, "id = ?", my.Rebind("id = ?", 4))
}

func TestDialect_BuildInsert(t *testing.T) {
	t.Parallel()

	row := map[string]any{"name": "ann", "age": 30}

	q, args, err := dialect(t, "mysql").BuildInsert("users", row)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `users` (`age`, `name`) VALUES (?, ?)", q)
	assert.Equal(t, []any{30, "ann"}, args)

	q, _, err = dialect(t, "pgx").BuildInsert("users", row)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("age", "name") VALUES ($1, $2)`, q)

	_, _, err = dialect(t, "mysql").BuildInsert("users", nil)
	assert.ErrorIs(t, err, db.ErrEmptyData)
}

func TestDialect_BuildUpdate(t *testing.T) {
	t.Parallel()

	row := map[string]any{"name": "bob", "age": 31}

	q, args, err := dialect(t, "pgx").BuildUpdate("users", row, "id = ? AND org = ?", 7, "acme")
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "users" SET "age" = $1, "name" = $2 WHERE id = $3 AND org = $4`, q)
	assert.Equal(t, []any{31, "bob", 7, "acme"}, args)

	q, _, err = dialect(t, "mysql").BuildUpdate("users", row, "id = ?", 7)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `users` SET `age` = ?, `name` = ? WHERE id = ?", q)

	_, _, err = dialect(t, "mysql").BuildUpdate("users", row, "  ")
	assert.ErrorIs(t, err, db.ErrEmptyCondition)
	_, _, err = dialect(t, "mysql").BuildUpdate("users", nil, "id = 1")
	assert.ErrorIs(t, err, db.ErrEmptyData)
}

func TestDialect_BuildDelete(t *testing.T) {
	t.Parallel()

	q, args, err := dialect(t, "pgx").BuildDelete("users", "id = ?", 9)
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "users" WHERE id = $1`, q)
	assert.Equal(t, []any{9}, args)

	_, _, err = dialect(t, "pgx").BuildDelete("users", "")
	assert.ErrorIs(t, err, db.ErrEmptyCondition)
}

package db

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Driver names registered with database/sql.
const (
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
)

// Dialect knows how a driver quotes identifiers and numbers placeholders.
type Dialect struct {
	driver string
	quote  byte
}

// DialectFor returns the dialect of a registered driver name. "postgres"
// and "postgresql" are accepted as aliases of pgx.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case DriverPostgres, "postgres", "postgresql":
		return Dialect{driver: DriverPostgres, quote: '"'}, nil
	case DriverMySQL, "mariadb":
		return Dialect{driver: DriverMySQL, quote: '`'}, nil
	default:
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

func (d Dialect) Driver() string {
	return d.driver
}

// Quote escapes an identifier. Dotted names are quoted per part so
// "public.users" becomes "public"."users".
func (d Dialect) Quote(ident string) (string, error) {
	if strings.TrimSpace(ident) == "" {
		return "", ErrEmptyIdentifier
	}
	q := string(d.quote)
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		if p == "" {
			return "", fmt.Errorf("%w: %q", ErrEmptyIdentifier, ident)
		}
		parts[i] = q + strings.ReplaceAll(p, q, q+q) + q
	}
	return strings.Join(parts, "."), nil
}

// Placeholder returns the n-th (1-based) bind marker.
func (d Dialect) Placeholder(n int) string {
	if d.driver == DriverPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Rebind rewrites '?' markers outside quoted text to the dialect's style,
// numbering from offset+1. MySQL queries are returned unchanged.
func (d Dialect) Rebind(query string, offset int) string {
	if d.driver != DriverPostgres || !strings.Contains(query, "?") {
		return query
	}

	var (
		b     strings.Builder
		n     = offset
		quote rune
	)
	b.Grow(len(query) + 8)
	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '?':
			n++
			b.WriteString(d.Placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BuildInsert returns an INSERT statement and its arguments. Columns are
// emitted in sorted order.
func (d Dialect) BuildInsert(table string, row map[string]any) (string, []any, error) {
	if len(row) == 0 {
		return "", nil, ErrEmptyData
	}
	tbl, err := d.Quote(table)
	if err != nil {
		return "", nil, err
	}

	cols := sortedKeys(row)
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		if names[i], err = d.Quote(c); err != nil {
			return "", nil, err
		}
		marks[i] = d.Placeholder(i + 1)
		args[i] = row[c]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tbl, strings.Join(names, ", "), strings.Join(marks, ", "))
	return query, args, nil
}

// BuildUpdate returns an UPDATE statement for row filtered by where. The
// where fragment uses '?' markers bound to whereArgs.
func (d Dialect) BuildUpdate(table string, row map[string]any, where string, whereArgs ...any) (string, []any, error) {
	if len(row) == 0 {
		return "", nil, ErrEmptyData
	}
	if strings.TrimSpace(where) == "" {
		return "", nil, ErrEmptyCondition
	}
	tbl, err := d.Quote(table)
	if err != nil {
		return "", nil, err
	}

	cols := sortedKeys(row)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+len(whereArgs))
	for i, c := range cols {
		name, err := d.Quote(c)
		if err != nil {
			return "", nil, err
		}
		sets[i] = name + " = " + d.Placeholder(i+1)
		args = append(args, row[c])
	}
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", tbl, strings.Join(sets, ", "), d.Rebind(where, len(cols)))
	return query, args, nil
}

// BuildDelete returns a DELETE statement filtered by where.
func (d Dialect) BuildDelete(table, where string, whereArgs ...any) (string, []any, error) {
	if strings.TrimSpace(where) == "" {
		return "", nil, ErrEmptyCondition
	}
	tbl, err := d.Quote(table)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("DELETE FROM %s WHERE %s", tbl, d.Rebind(where, 0)), whereArgs, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

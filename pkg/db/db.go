package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/yeoblyv/spider/pkg/logger"
)

// Version identifies the database accessor in the component registry.
const Version = "1.0.0"

// Result describes the effect of a write.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// DB is a pooled connection with dialect-aware helpers.
type DB struct {
	conn    *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

type Option func(*DB)

func WithLogger(l *slog.Logger) Option {
	return func(d *DB) {
		if l != nil {
			d.logger = l
		}
	}
}

// Open connects to the configured database, retrying with a linearly
// growing pause: attempt 1 waits RetryInterval, attempt 2 twice that.
func Open(ctx context.Context, cfg Config, opts ...Option) (*DB, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	d := &DB{dialect: dialect, logger: logger.Discard()}
	for _, opt := range opts {
		opt(d)
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		conn, err := sql.Open(dialect.Driver(), cfg.DSN)
		if err != nil {
			// Invalid DSNs fail here and are not retried.
			return nil, errors.Join(ErrFailedToOpenDBConnection, err)
		}
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
		conn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

		if err := conn.PingContext(ctx); err != nil {
			_ = conn.Close()
			lastErr = err
			d.logger.WarnContext(ctx, "database not reachable",
				slog.Int("attempt", i+1),
				slog.String("driver", dialect.Driver()),
				logger.Error(err),
			)
			if i+1 < attempts {
				if err := sleep(ctx, time.Duration(i+1)*cfg.RetryInterval); err != nil {
					return nil, errors.Join(ErrFailedToOpenDBConnection, err)
				}
			}
			continue
		}

		d.conn = conn
		return d, nil
	}

	return nil, errors.Join(ErrFailedToOpenDBConnection, lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (d *DB) Dialect() Dialect {
	return d.dialect
}

func (d *DB) Close() error {
	return d.conn.Close()
}

// Query runs a read statement with '?' markers and returns every row as a
// column-name map. Byte slices are converted to strings.
func (d *DB) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := d.conn.QueryContext(ctx, d.dialect.Rebind(query, 0), args...)
	if err != nil {
		return nil, d.fail(ctx, "query", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, d.fail(ctx, "query", err)
	}

	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, d.fail(ctx, "query", err)
		}

		row := make(map[string]any, len(cols))
		for i, c := range cols {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, d.fail(ctx, "query", err)
	}
	return out, nil
}

// Exec runs a write statement with '?' markers.
func (d *DB) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	return d.exec(ctx, "exec", d.dialect.Rebind(query, 0), args)
}

func (d *DB) Insert(ctx context.Context, table string, row map[string]any) (Result, error) {
	query, args, err := d.dialect.BuildInsert(table, row)
	if err != nil {
		return Result{}, err
	}
	return d.exec(ctx, "insert", query, args)
}

func (d *DB) Update(ctx context.Context, table string, row map[string]any, where string, args ...any) (Result, error) {
	query, all, err := d.dialect.BuildUpdate(table, row, where, args...)
	if err != nil {
		return Result{}, err
	}
	return d.exec(ctx, "update", query, all)
}

func (d *DB) Delete(ctx context.Context, table, where string, args ...any) (Result, error) {
	query, all, err := d.dialect.BuildDelete(table, where, args...)
	if err != nil {
		return Result{}, err
	}
	return d.exec(ctx, "delete", query, all)
}

func (d *DB) exec(ctx context.Context, op, query string, args []any) (Result, error) {
	res, err := d.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, d.fail(ctx, op, err)
	}

	var out Result
	out.RowsAffected, _ = res.RowsAffected()
	// pgx does not report insert ids; the zero value stands.
	out.LastInsertID, _ = res.LastInsertId()
	return out, nil
}

func (d *DB) fail(ctx context.Context, op string, err error) error {
	d.logger.ErrorContext(ctx, "database operation failed",
		slog.String("op", op),
		logger.Error(err),
	)
	return errors.Join(ErrQueryFailed, fmt.Errorf("%s: %w", op, err))
}

// Healthcheck returns a probe for readiness endpoints.
func Healthcheck(d *DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if d == nil || d.conn == nil {
			return ErrNotConfigured
		}
		if err := d.conn.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	mysqldrv "github.com/go-sql-driver/mysql"

	"liok_hotels/internal/domain"
)

const errDuplicateKey = 1062

type scanner interface {
	Scan(dest ...any) error
}

// table implements domain.Store[T] for one record type. Per-record repos
// embed it and add their own queries.
type table[T any] struct {
	db    *sql.DB
	base  string // bare table name, for writes
	from  string // FROM clause for reads, may join
	cols  string
	idCol string
	order string

	insertSQL  string
	updateSQL  string
	insertArgs func(*T) []any
	updateArgs func(*T) []any // id last
	scan       func(scanner, *T) error
	id         func(*T) *int64
}

func (t *table[T]) query(ctx context.Context, where string, args ...any) ([]T, error) {
	return t.queryN(ctx, where, 0, args...)
}

// queryN reads rows in display order; limit 0 means all of them.
func (t *table[T]) queryN(ctx context.Context, where string, limit int, args ...any) ([]T, error) {
	q := "SELECT " + t.cols + " FROM " + t.from
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY " + t.order
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := t.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var v T
		if err := t.scan(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (t *table[T]) List(ctx context.Context) ([]T, error) {
	return t.query(ctx, "")
}

func (t *table[T]) Get(ctx context.Context, id int64) (T, error) {
	var v T
	row := t.db.QueryRowContext(ctx, "SELECT "+t.cols+" FROM "+t.from+" WHERE "+t.idCol+" = ?", id)
	if err := t.scan(row, &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return v, domain.ErrNotFound
		}
		return v, err
	}
	return v, nil
}

func (t *table[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := t.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.base).Scan(&n)
	return n, err
}

func (t *table[T]) Create(ctx context.Context, v *T) error {
	res, err := t.db.ExecContext(ctx, t.insertSQL, t.insertArgs(v)...)
	if err != nil {
		return mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	*t.id(v) = id
	return nil
}

func (t *table[T]) Update(ctx context.Context, v *T) error {
	res, err := t.db.ExecContext(ctx, t.updateSQL, t.updateArgs(v)...)
	if err != nil {
		return mapErr(err)
	}
	return t.requireRow(ctx, res, *t.id(v))
}

func (t *table[T]) Delete(ctx context.Context, id int64) error {
	_, err := t.db.ExecContext(ctx, "DELETE FROM "+t.base+" WHERE id = ?", id)
	return err
}

// requireRow tells a missing row apart from an update that changed nothing;
// MySQL reports zero affected rows for both.
func (t *table[T]) requireRow(ctx context.Context, res sql.Result, id int64) error {
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	var one int
	err := t.db.QueryRowContext(ctx, "SELECT 1 FROM "+t.base+" WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func mapErr(err error) error {
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) && me.Number == errDuplicateKey {
		return fmt.Errorf("%w: %s", domain.ErrConflict, me.Message)
	}
	return err
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jask/teachdesk/internal/model"
)

// Store is the record store contract every list screen talks to.
type Store interface {
	List(ctx context.Context, table string, orderByID bool) ([]model.Record, error)
	Get(ctx context.Context, table string, id int64) (model.Record, error)
	Update(ctx context.Context, table string, id int64, patch model.Record) (model.Record, error)
	Delete(ctx context.Context, table string, id int64) error
	Count(ctx context.Context, table string) (int, error)
}

// RecordRepo implements Store over any catalog table.
type RecordRepo struct {
	db *sqlx.DB
}

var _ Store = (*RecordRepo)(nil)

func NewRecordRepo(db *sqlx.DB) *RecordRepo {
	return &RecordRepo{db: db}
}

func (r *RecordRepo) List(ctx context.Context, table string, orderByID bool) ([]model.Record, error) {
	t, err := lookupTable("list", table)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.ColumnNames(), ", "), t.Name)
	if orderByID {
		query += " ORDER BY id ASC"
	}
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, wrap("list", table, 0, err)
	}
	defer rows.Close()
	out := []model.Record{}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, wrap("list", table, 0, err)
		}
		out = append(out, toRecord(t, vals))
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list", table, 0, err)
	}
	return out, nil
}

func (r *RecordRepo) Get(ctx context.Context, table string, id int64) (model.Record, error) {
	t, err := lookupTable("get", table)
	if err != nil {
		return nil, err
	}
	return get(ctx, r.db, t, id)
}

func (r *RecordRepo) Update(ctx context.Context, table string, id int64, patch model.Record) (model.Record, error) {
	t, err := lookupTable("update", table)
	if err != nil {
		return nil, err
	}
	var sets []string
	var args []any
	for _, c := range t.Editable() {
		v, ok := patch[c.Name]
		if !ok {
			continue
		}
		sets = append(sets, c.Name+" = ?")
		args = append(args, model.Normalize(c.Kind, v))
	}
	if len(sets) == 0 {
		return get(ctx, r.db, t, id)
	}
	args = append(args, id)
	query := r.db.Rebind(fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.Name, strings.Join(sets, ", ")))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("update", table, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, wrap("update", table, id, err)
	}
	if n == 0 {
		return nil, notFound("update", table, id)
	}
	return get(ctx, r.db, t, id)
}

func (r *RecordRepo) Delete(ctx context.Context, table string, id int64) error {
	t, err := lookupTable("delete", table)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.Name)), id)
	if err != nil {
		return wrap("delete", table, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap("delete", table, id, err)
	}
	if n == 0 {
		return notFound("delete", table, id)
	}
	return nil
}

func (r *RecordRepo) Count(ctx context.Context, table string) (int, error) {
	t, err := lookupTable("count", table)
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+t.Name); err != nil {
		return 0, wrap("count", table, 0, err)
	}
	return n, nil
}

// Insert adds a record and returns it with its assigned id. It backs seeding
// and tests; no screen creates records.
func (r *RecordRepo) Insert(ctx context.Context, table string, rec model.Record) (model.Record, error) {
	id, err := Insert(ctx, r.db, table, rec)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, table, id)
}

// Insert writes rec into table through ext (a *sqlx.DB or *sqlx.Tx).
func Insert(ctx context.Context, ext sqlx.ExtContext, table string, rec model.Record) (int64, error) {
	t, err := lookupTable("insert", table)
	if err != nil {
		return 0, err
	}
	var cols, marks []string
	var args []any
	for _, c := range t.Editable() {
		v, ok := rec[c.Name]
		if !ok {
			continue
		}
		cols = append(cols, c.Name)
		marks = append(marks, "?")
		args = append(args, model.Normalize(c.Kind, v))
	}
	var query string
	if len(cols) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING id", t.Name)
	} else {
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id", t.Name, strings.Join(cols, ", "), strings.Join(marks, ", "))
	}
	var id int64
	if err := ext.QueryRowxContext(ctx, ext.Rebind(query), args...).Scan(&id); err != nil {
		return 0, wrap("insert", table, 0, err)
	}
	return id, nil
}

func get(ctx context.Context, db *sqlx.DB, t model.Table, id int64) (model.Record, error) {
	query := db.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", strings.Join(t.ColumnNames(), ", "), t.Name))
	row := db.QueryRowxContext(ctx, query, id)
	vals, err := row.SliceScan()
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("get", t.Name, id)
	}
	if err != nil {
		return nil, wrap("get", t.Name, id, err)
	}
	return toRecord(t, vals), nil
}

func lookupTable(op, name string) (model.Table, error) {
	t, ok := model.Lookup(name)
	if !ok {
		return model.Table{}, invalid(op, name, "unknown table %q", name)
	}
	return t, nil
}

func toRecord(t model.Table, vals []any) model.Record {
	rec := make(model.Record, len(t.Columns))
	for i, c := range t.Columns {
		if i >= len(vals) {
			break
		}
		rec[c.Name] = model.Normalize(c.Kind, vals[i])
	}
	return rec
}

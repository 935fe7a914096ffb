package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"movieflix/internal/model"
	"movieflix/internal/repository"
)

// CatalogPostgres is the PostgreSQL implementation of repository.CatalogRepository.
// The table name is the entity's Kind; every table has the (id, name) layout.
type CatalogPostgres[T model.Entity] struct {
	db *sql.DB

	qInsert string
	qFind   string
	qList   string
	qDelete string
}

// NewCatalogPostgres creates a repository over the table named after T.
func NewCatalogPostgres[T model.Entity](db *sql.DB) *CatalogPostgres[T] {
	var zero T
	table := zero.Kind()
	return &CatalogPostgres[T]{
		db:      db,
		qInsert: fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) RETURNING id, name`, table),
		qFind:   fmt.Sprintf(`SELECT id, name FROM %s WHERE id = $1`, table),
		qList:   fmt.Sprintf(`SELECT id, name FROM %s ORDER BY id`, table),
		qDelete: fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table),
	}
}

// NewCategoryPostgres is the category table repository.
func NewCategoryPostgres(db *sql.DB) *CatalogPostgres[model.Category] {
	return NewCatalogPostgres[model.Category](db)
}

// NewStreamingPostgres is the streaming table repository.
func NewStreamingPostgres(db *sql.DB) *CatalogPostgres[model.Streaming] {
	return NewCatalogPostgres[model.Streaming](db)
}

var (
	_ repository.CategoryRepository  = (*CatalogPostgres[model.Category])(nil)
	_ repository.StreamingRepository = (*CatalogPostgres[model.Streaming])(nil)
)

// Create inserts the name; the ID is generated by the BIGSERIAL column.
func (r *CatalogPostgres[T]) Create(ctx context.Context, entity *T) (*T, error) {
	in := model.Record(*entity)

	var out model.Record
	if err := r.db.QueryRowContext(ctx, r.qInsert, in.Name).Scan(&out.ID, &out.Name); err != nil {
		return nil, err
	}
	created := T(out)
	return &created, nil
}

// FindByID fetches a single row. A missing row surfaces as sql.ErrNoRows.
func (r *CatalogPostgres[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var rec model.Record
	if err := r.db.QueryRowContext(ctx, r.qFind, id).Scan(&rec.ID, &rec.Name); err != nil {
		return nil, err
	}
	found := T(rec)
	return &found, nil
}

// List returns all rows ordered by ID.
func (r *CatalogPostgres[T]) List(ctx context.Context) ([]T, error) {
	rows, err := r.db.QueryContext(ctx, r.qList)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var rec model.Record
		if err := rows.Scan(&rec.ID, &rec.Name); err != nil {
			return nil, err
		}
		items = append(items, T(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a row by ID. Zero affected rows is reported as sql.ErrNoRows.
func (r *CatalogPostgres[T]) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.qDelete, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

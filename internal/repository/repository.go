// Package repository contains data access abstractions for the catalog.
// Implementations live in subpackages (e.g., postgres).
package repository

import (
	"context"

	"movieflix/internal/model"
)

// CatalogRepository is the persistence contract shared by every catalog
// resource. Strictly storage operations, no business rules.
type CatalogRepository[T model.Entity] interface {
	// Create inserts a record and returns it with the store-generated ID.
	Create(ctx context.Context, entity *T) (*T, error)

	// FindByID returns sql.ErrNoRows when no row has the given ID.
	FindByID(ctx context.Context, id int64) (*T, error)

	// List returns every record ordered by ID. Never nil.
	List(ctx context.Context) ([]T, error)

	// Delete removes a record by ID and returns sql.ErrNoRows when nothing was deleted.
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository persists categories.
type CategoryRepository = CatalogRepository[model.Category]

// StreamingRepository persists streaming platforms.
type StreamingRepository = CatalogRepository[model.Streaming]

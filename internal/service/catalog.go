package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"movieflix/internal/model"
	"movieflix/internal/repository"
)

var (
	ErrInvalidID   = errors.New("id must be a positive integer")
	ErrInvalidName = errors.New("name is required and must be at most 100 characters")
	ErrNotFound    = errors.New("record not found")
)

// CatalogService defines the use cases shared by every catalog resource.
type CatalogService[T model.Entity] interface {
	// FindAll returns every record, ordered by ID.
	FindAll(ctx context.Context) ([]T, error)

	// Save persists a new record and returns it with its generated ID.
	Save(ctx context.Context, entity T) (*T, error)

	// FindByID returns ErrNotFound when the ID is unknown.
	FindByID(ctx context.Context, id int64) (*T, error)

	// Delete removes the record, or returns ErrNotFound when the ID is unknown.
	Delete(ctx context.Context, id int64) error
}

// CategoryService manages categories.
type CategoryService = CatalogService[model.Category]

// StreamingService manages streaming platforms.
type StreamingService = CatalogService[model.Streaming]

type catalogService[T model.Entity] struct {
	repo repository.CatalogRepository[T]
	kind string
}

// NewCatalogService constructs a CatalogService over repo.
func NewCatalogService[T model.Entity](repo repository.CatalogRepository[T]) CatalogService[T] {
	var zero T
	return &catalogService[T]{repo: repo, kind: zero.Kind()}
}

// NewCategoryService constructs the category service.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return NewCatalogService[model.Category](repo)
}

// NewStreamingService constructs the streaming service.
func NewStreamingService(repo repository.StreamingRepository) StreamingService {
	return NewCatalogService[model.Streaming](repo)
}

func (s *catalogService[T]) FindAll(ctx context.Context) ([]T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	return items, nil
}

func (s *catalogService[T]) Save(ctx context.Context, entity T) (*T, error) {
	rec := model.Record(entity)
	if err := validateName(rec.Name); err != nil {
		return nil, err
	}
	// IDs are always store-generated.
	rec.ID = 0
	in := T(rec)

	created, err := s.repo.Create(ctx, &in)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", s.kind, err)
	}
	return created, nil
}

func (s *catalogService[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %d: %w", s.kind, id, ErrNotFound)
		}
		return nil, fmt.Errorf("find %s %d: %w", s.kind, id, err)
	}
	return found, nil
}

// Delete checks existence first so a missing target is reported as
// ErrNotFound, the same outcome as FindByID.
func (s *catalogService[T]) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		// Removed concurrently between the lookup and the delete.
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s %d: %w", s.kind, id, ErrNotFound)
		}
		return fmt.Errorf("delete %s %d: %w", s.kind, id, err)
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" || utf8.RuneCountInString(name) > model.NameMaxLength {
		return ErrInvalidName
	}
	return nil
}

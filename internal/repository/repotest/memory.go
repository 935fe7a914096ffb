// Package repotest provides an in-memory CatalogRepository for tests that
// need real create/find/delete semantics without a database.
package repotest

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"movieflix/internal/model"
	"movieflix/internal/repository"
)

// Memory stores records in a map and hands out sequential IDs starting at 1.
type Memory[T model.Entity] struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.Record
}

func NewMemory[T model.Entity]() *Memory[T] {
	return &Memory[T]{rows: make(map[int64]model.Record)}
}

var _ repository.CategoryRepository = (*Memory[model.Category])(nil)

func (m *Memory[T]) Create(_ context.Context, entity *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	rec := model.Record(*entity)
	rec.ID = m.nextID
	m.rows[rec.ID] = rec

	out := T(rec)
	return &out, nil
}

func (m *Memory[T]) FindByID(_ context.Context, id int64) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := T(rec)
	return &out, nil
}

func (m *Memory[T]) List(_ context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]T, 0, len(m.rows))
	for _, rec := range m.rows {
		items = append(items, T(rec))
	}
	sort.Slice(items, func(i, j int) bool {
		return model.Record(items[i]).ID < model.Record(items[j]).ID
	})
	return items, nil
}

func (m *Memory[T]) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}

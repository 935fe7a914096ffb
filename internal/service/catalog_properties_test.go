package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movieflix/internal/model"
	"movieflix/internal/repository/repotest"
)

func TestCatalogService_CreatedRecordIsReadable(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(repotest.NewMemory[model.Category]())

	for _, name := range []string{"Action", "Drama", "Documentary"} {
		created, err := svc.Save(ctx, model.Category{Name: name})
		require.NoError(t, err)

		found, err := svc.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, name, found.Name)
	}
}

func TestCatalogService_FindAllTracksCreatesAndDeletes(t *testing.T) {
	ctx := context.Background()
	svc := NewStreamingService(repotest.NewMemory[model.Streaming]())

	var ids []int64
	for i := 0; i < 5; i++ {
		before, err := svc.FindAll(ctx)
		require.NoError(t, err)

		created, err := svc.Save(ctx, model.Streaming{Name: fmt.Sprintf("platform-%d", i)})
		require.NoError(t, err)
		ids = append(ids, created.ID)

		after, err := svc.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before)+1)
	}

	for _, id := range ids {
		before, err := svc.FindAll(ctx)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, id))

		after, err := svc.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before)-1)
	}
}

func TestCatalogService_MissingTargets(t *testing.T) {
	ctx := context.Background()
	svc := NewStreamingService(repotest.NewMemory[model.Streaming]())

	_, err := svc.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 9999), ErrNotFound)

	created, err := svc.Save(ctx, model.Streaming{Name: "Netflix"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	// A second delete of the same id must fail, not succeed silently.
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

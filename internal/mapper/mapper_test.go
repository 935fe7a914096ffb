package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"movieflix/internal/dto"
	"movieflix/internal/model"
)

func TestCategoryMapping(t *testing.T) {
	entity := ToCategory(dto.CategoryRequest{Name: "Horror"})
	assert.Equal(t, model.Category{Name: "Horror"}, entity)

	entity.ID = 4
	assert.Equal(t, dto.CategoryResponse{ID: 4, Name: "Horror"}, ToCategoryResponse(entity))
}

func TestStreamingMapping(t *testing.T) {
	entity := ToStreaming(dto.StreamingRequest{Name: "Disney+"})
	assert.Zero(t, entity.ID)
	assert.Equal(t, "Disney+", entity.Name)

	entity.ID = 2
	assert.Equal(t, dto.StreamingResponse{ID: 2, Name: "Disney+"}, ToStreamingResponse(entity))
}

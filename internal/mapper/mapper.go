// Package mapper converts between wire DTOs and catalog entities.
package mapper

import (
	"movieflix/internal/dto"
	"movieflix/internal/model"
)

// ToCategory builds a Category from a create request. The ID is left zero.
func ToCategory(req dto.CategoryRequest) model.Category {
	return model.Category{Name: req.Name}
}

// ToCategoryResponse maps a stored Category to its wire form.
func ToCategoryResponse(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name}
}

// ToStreaming builds a Streaming from a create request. The ID is left zero.
func ToStreaming(req dto.StreamingRequest) model.Streaming {
	return model.Streaming{Name: req.Name}
}

// ToStreamingResponse maps a stored Streaming to its wire form.
func ToStreamingResponse(s model.Streaming) dto.StreamingResponse {
	return dto.StreamingResponse{ID: s.ID, Name: s.Name}
}

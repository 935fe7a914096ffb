package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"movieflix/internal/dto"
	"movieflix/internal/mapper"
	"movieflix/internal/model"
	"movieflix/internal/service"
)

// CategoryResource serves /movieflix/category.
type CategoryResource = Resource[model.Category, dto.CategoryRequest, dto.CategoryResponse]

// StreamingResource serves /movieflix/streaming.
type StreamingResource = Resource[model.Streaming, dto.StreamingRequest, dto.StreamingResponse]

// NewCategoryResource binds the category service to its DTOs.
func NewCategoryResource(svc service.CategoryService, v *validator.Validate, log *zap.Logger) *CategoryResource {
	return NewResource(svc, mapper.ToCategory, mapper.ToCategoryResponse, v, log)
}

// NewStreamingResource binds the streaming service to its DTOs.
func NewStreamingResource(svc service.StreamingService, v *validator.Validate, log *zap.Logger) *StreamingResource {
	return NewResource(svc, mapper.ToStreaming, mapper.ToStreamingResponse, v, log)
}

// MountCategories registers the category routes on router.
func MountCategories(router fiber.Router, r *CategoryResource) {
	g := router.Group("/" + model.Category{}.Kind())
	g.Get("", listCategories(r))
	g.Post("", createCategory(r))
	g.Get("/:id", getCategory(r))
	g.Delete("/:id", deleteCategory(r))
}

// MountStreamings registers the streaming routes on router.
func MountStreamings(router fiber.Router, r *StreamingResource) {
	g := router.Group("/" + model.Streaming{}.Kind())
	g.Get("", listStreamings(r))
	g.Post("", createStreaming(r))
	g.Get("/:id", getStreaming(r))
	g.Delete("/:id", deleteStreaming(r))
}

// listCategories godoc
//
// @Summary List categories
// @Tags category
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /movieflix/category [get]
func listCategories(r *CategoryResource) fiber.Handler { return r.List() }

// createCategory godoc
//
// @Summary Create a category
// @Tags category
// @Accept json
// @Produce json
// @Param body body dto.CategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} errorPayload
// @Router /movieflix/category [post]
func createCategory(r *CategoryResource) fiber.Handler { return r.Create() }

// getCategory godoc
//
// @Summary Get a category
// @Tags category
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /movieflix/category/{id} [get]
func getCategory(r *CategoryResource) fiber.Handler { return r.Get() }

// deleteCategory godoc
//
// @Summary Delete a category
// @Tags category
// @Param id path int true "Category ID"
// @Success 204 "No Content"
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /movieflix/category/{id} [delete]
func deleteCategory(r *CategoryResource) fiber.Handler { return r.Delete() }

// listStreamings godoc
//
// @Summary List streaming platforms
// @Tags streaming
// @Produce json
// @Success 200 {array} dto.StreamingResponse
// @Router /movieflix/streaming [get]
func listStreamings(r *StreamingResource) fiber.Handler { return r.List() }

// createStreaming godoc
//
// @Summary Create a streaming platform
// @Tags streaming
// @Accept json
// @Produce json
// @Param body body dto.StreamingRequest true "Streaming platform"
// @Success 201 {object} dto.StreamingResponse
// @Failure 400 {object} errorPayload
// @Router /movieflix/streaming [post]
func createStreaming(r *StreamingResource) fiber.Handler { return r.Create() }

// getStreaming godoc
//
// @Summary Get a streaming platform
// @Tags streaming
// @Produce json
// @Param id path int true "Streaming ID"
// @Success 200 {object} dto.StreamingResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /movieflix/streaming/{id} [get]
func getStreaming(r *StreamingResource) fiber.Handler { return r.Get() }

// deleteStreaming godoc
//
// @Summary Delete a streaming platform
// @Tags streaming
// @Param id path int true "Streaming ID"
// @Success 204 "No Content"
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /movieflix/streaming/{id} [delete]
func deleteStreaming(r *StreamingResource) fiber.Handler { return r.Delete() }

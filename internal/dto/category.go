// Package dto holds the JSON wire shapes of the catalog API.
package dto

// CategoryRequest is the body of POST /movieflix/category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100" example:"Action"`
}

// CategoryResponse is a category as returned by the API.
type CategoryResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Action"`
}

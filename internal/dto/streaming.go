package dto

// StreamingRequest is the body of POST /movieflix/streaming.
type StreamingRequest struct {
	Name string `json:"name" validate:"required,max=100" example:"Netflix"`
}

// StreamingResponse is a streaming platform as returned by the API.
type StreamingResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Netflix"`
}

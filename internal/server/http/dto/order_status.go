package dto

// UpdateStatusRequest describes status update payload.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ErrorResponse describes error body returned by order status endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

package dto

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// NewSuccessResponse creates a message body
func NewSuccessResponse(message string) SuccessResponse {
	return SuccessResponse{Message: message}
}

// PaginationInfo describes one page of a listing
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Storage string `json:"storage" example:"postgres"`
}

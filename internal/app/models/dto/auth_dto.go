package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the caller's primary role
type LoginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role" example:"user"`
	TokenType string `json:"tokenType" example:"Bearer"`
	// ExpiresIn is in seconds, 0 when the token does not expire
	ExpiresIn int64 `json:"expiresIn"`
}

// RegisterRequest represents a self-service registration.
// Role is honoured only when it is "admin".
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"required,notblank"`
	Role     string `json:"role"`
}

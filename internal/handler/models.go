package handler

// CreateUserRequest is the body of both registration endpoints. IsActive is
// only honored on the admin endpoint and defaults to true when omitted.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

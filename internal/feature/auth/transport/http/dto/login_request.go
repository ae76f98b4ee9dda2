package dto

// LoginRequest is the body of POST /signin.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned on a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

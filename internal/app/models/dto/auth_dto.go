package dto

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,max=64" example:"jdoe"`
	Password    string `json:"password" binding:"required" example:"s3cret"`
	DisplayName string `json:"displayName" binding:"required,max=128" example:"John Doe"`
	Email       string `json:"email" binding:"required,email" example:"jdoe@college.edu"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"jdoe"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

package models

// User defines a registered account
type User struct {
	ID           int64   `json:"id" example:"1"`                       // Unique identifier for the user
	Username     string  `json:"username" example:"jdoe"`              // Unique login name
	Password     string  `json:"-"`                                    // Salted password hash (never serialized)
	DisplayName  string  `json:"displayName" example:"John Doe"`       // Name shown next to uploads
	Email        string  `json:"email" example:"jdoe@college.edu"`     // Unique email address
	ProfileImage *string `json:"profileImage" example:"avatars/1.png"` // Optional profile image reference
}

// NewUser holds the fields needed to create a user
type NewUser struct {
	Username    string
	Password    string
	DisplayName string
	Email       string
}

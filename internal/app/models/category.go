package models

// Category is a fixed classification tag applied to notes
type Category struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Computer Science"`
	Color string `json:"color" example:"blue"`         // Display hint
	Icon  string `json:"icon" example:"computer-line"` // Display hint
}

// NewCategory holds the fields needed to create a category
type NewCategory struct {
	Name  string
	Color string
	Icon  string
}

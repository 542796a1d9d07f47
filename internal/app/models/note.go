package models

import "time"

// Note is the metadata of an uploaded document
type Note struct {
	ID          int64     `json:"id" example:"15"`
	Title       string    `json:"title" example:"Linear Algebra - Week 5"`
	Description string    `json:"description" example:"Eigenvalues and eigenvectors"`
	FileName    string    `json:"fileName" example:"week5.pdf"`       // Original file name
	FileSize    int64     `json:"fileSize" example:"1048576"`         // Size in bytes
	FileType    string    `json:"fileType" example:"application/pdf"` // MIME type
	UploadDate  time.Time `json:"uploadDate" example:"2024-01-15T10:00:00Z"`
	UserID      int64     `json:"userId" example:"1"`
	CategoryID  int64     `json:"categoryId" example:"2"`
	Downloads   int64     `json:"downloads" example:"0"`
	Views       int64     `json:"views" example:"0"`
}

// NewNote holds the fields needed to create a note.
// Upload date and counters are assigned by the store.
type NewNote struct {
	Title       string
	Description string
	FileName    string
	FileSize    int64
	FileType    string
	UserID      int64
	CategoryID  int64
}

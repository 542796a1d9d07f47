package dto

// CreateNoteRequest holds the non-file fields of a note upload form
type CreateNoteRequest struct {
	Title       string `form:"title" binding:"required,max=255" example:"Linear Algebra - Week 5"`
	Description string `form:"description" binding:"required" example:"Eigenvalues and eigenvectors"`
	CategoryID  int64  `form:"categoryId" binding:"required,gt=0" example:"2"`
}

package dto

// RateNoteRequest submits or replaces the caller's rating of a note
type RateNoteRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5" example:"4"`
	Comment *string `json:"comment" example:"Very clear"`
}

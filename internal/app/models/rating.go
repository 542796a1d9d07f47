package models

// Rating is one user's 1-5 score for one note
type Rating struct {
	ID      int64   `json:"id" example:"3"`
	UserID  int64   `json:"userId" example:"1"`
	NoteID  int64   `json:"noteId" example:"15"`
	Rating  int     `json:"rating" example:"4"`
	Comment *string `json:"comment" example:"Very clear"`
}

// NewRating holds the fields needed to create a rating
type NewRating struct {
	UserID  int64
	NoteID  int64
	Rating  int
	Comment *string
}

// RatingUpdate lists the fields of a rating that may change.
// Nil fields are left untouched. ClearComment removes the comment and
// takes precedence over Comment.
type RatingUpdate struct {
	Rating       *int
	Comment      *string
	ClearComment bool
}

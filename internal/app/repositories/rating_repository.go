package repositories

import (
	"sort"

	"github.com/yigit/studyshare/internal/app/models"
)

// GetRatingsByNote returns all ratings of a note ordered by id
func (s *MemStorage) GetRatingsByNote(noteID int64) []*models.Rating {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Rating, 0)
	for _, r := range s.ratings {
		if r.NoteID == noteID {
			result = append(result, copyRating(r))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// GetUserRating returns the rating userID gave noteID
func (s *MemStorage) GetUserRating(userID, noteID int64) (*models.Rating, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.ratings {
		if r.UserID == userID && r.NoteID == noteID {
			return copyRating(r), true
		}
	}
	return nil, false
}

// CreateRating stores a new rating. It does not check for an existing
// rating by the same user; callers route those to UpdateRating.
func (s *MemStorage) CreateRating(r models.NewRating) *models.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentRatingID++
	rating := &models.Rating{
		ID:      s.currentRatingID,
		UserID:  r.UserID,
		NoteID:  r.NoteID,
		Rating:  r.Rating,
		Comment: cloneString(r.Comment),
	}
	s.ratings[rating.ID] = rating
	return copyRating(rating)
}

// UpdateRating merges the set fields of update into the rating
func (s *MemStorage) UpdateRating(id int64, update models.RatingUpdate) (*models.Rating, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rating, ok := s.ratings[id]
	if !ok {
		return nil, false
	}
	if update.Rating != nil {
		rating.Rating = *update.Rating
	}
	switch {
	case update.ClearComment:
		rating.Comment = nil
	case update.Comment != nil:
		rating.Comment = cloneString(update.Comment)
	}
	return copyRating(rating), true
}

func copyRating(r *models.Rating) *models.Rating {
	c := *r
	c.Comment = cloneString(r.Comment)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

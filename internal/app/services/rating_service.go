package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/studyshare/internal/app/models"
	"github.com/yigit/studyshare/internal/app/models/dto"
	"github.com/yigit/studyshare/internal/app/repositories"
	"github.com/yigit/studyshare/internal/pkg/apperrors"
)

// RatingService defines the interface for rating operations
type RatingService interface {
	GetRatings(ctx context.Context, noteID int64) ([]*models.Rating, error)
	RateNote(ctx context.Context, userID, noteID int64, req *dto.RateNoteRequest) (*models.Rating, error)
	GetMyRating(ctx context.Context, userID, noteID int64) (*models.Rating, error)
	EnsureNote(ctx context.Context, noteID int64) error
}

type ratingServiceImpl struct {
	ratingRepo repositories.IRatingRepository
	noteRepo   repositories.INoteRepository
	logger     zerolog.Logger

	// keeps at most one rating per (user, note) across concurrent submissions
	upsertMu sync.Mutex
}

// NewRatingService creates a new RatingService
func NewRatingService(
	ratingRepo repositories.IRatingRepository,
	noteRepo repositories.INoteRepository,
	logger zerolog.Logger,
) RatingService {
	return &ratingServiceImpl{
		ratingRepo: ratingRepo,
		noteRepo:   noteRepo,
		logger:     logger,
	}
}

func (s *ratingServiceImpl) GetRatings(ctx context.Context, noteID int64) ([]*models.Rating, error) {
	if err := s.EnsureNote(ctx, noteID); err != nil {
		return nil, err
	}
	return s.ratingRepo.GetRatingsByNote(noteID), nil
}

// RateNote creates the caller's rating or replaces the existing one in place.
// A resubmission without a comment clears the previous one; an empty
// comment is stored as given.
func (s *ratingServiceImpl) RateNote(ctx context.Context, userID, noteID int64, req *dto.RateNoteRequest) (*models.Rating, error) {
	if err := s.EnsureNote(ctx, noteID); err != nil {
		return nil, err
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	s.upsertMu.Lock()
	defer s.upsertMu.Unlock()

	existing, ok := s.ratingRepo.GetUserRating(userID, noteID)
	if !ok {
		rating := s.ratingRepo.CreateRating(models.NewRating{
			UserID:  userID,
			NoteID:  noteID,
			Rating:  req.Rating,
			Comment: req.Comment,
		})
		s.logger.Info().Int64("ratingId", rating.ID).Int64("noteId", noteID).Int64("userId", userID).Msg("Rating created")
		return rating, nil
	}

	score := req.Rating
	rating, ok := s.ratingRepo.UpdateRating(existing.ID, models.RatingUpdate{
		Rating:       &score,
		Comment:      req.Comment,
		ClearComment: req.Comment == nil,
	})
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrRatingNotFound, "Rating not found")
	}
	s.logger.Info().Int64("ratingId", rating.ID).Int64("noteId", noteID).Int64("userId", userID).Msg("Rating updated")
	return rating, nil
}

func (s *ratingServiceImpl) GetMyRating(ctx context.Context, userID, noteID int64) (*models.Rating, error) {
	if err := s.EnsureNote(ctx, noteID); err != nil {
		return nil, err
	}
	rating, ok := s.ratingRepo.GetUserRating(userID, noteID)
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrRatingNotFound, "Rating not found")
	}
	return rating, nil
}

// EnsureNote reports ErrNoteNotFound when no note has the given id
func (s *ratingServiceImpl) EnsureNote(ctx context.Context, noteID int64) error {
	if _, ok := s.noteRepo.GetNote(noteID); !ok {
		return apperrors.NewCustomError(apperrors.ErrNoteNotFound, "Note not found")
	}
	return nil
}

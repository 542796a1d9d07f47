package services

import (
	"github.com/rs/zerolog"

	"github.com/yigit/studyshare/internal/app/repositories"
	"github.com/yigit/studyshare/internal/pkg/filestorage"
	"github.com/yigit/studyshare/internal/pkg/session"
)

// Services holds all the service instances
type Services struct {
	AuthService     *AuthService
	CategoryService CategoryService
	NoteService     NoteService
	RatingService   RatingService
}

// NewServices wires every service over the shared repositories
func NewServices(
	repos *repositories.Repositories,
	fileStorage filestorage.FileStorage,
	sessions *session.Manager,
	policy UploadPolicy,
	logger zerolog.Logger,
) *Services {
	return &Services{
		AuthService:     NewAuthService(repos.UserRepository, sessions, logger.With().Str("service", "auth").Logger()),
		CategoryService: NewCategoryService(repos.CategoryRepository),
		NoteService: NewNoteService(
			repos.NoteRepository,
			repos.CategoryRepository,
			repos.UserRepository,
			fileStorage,
			policy,
			logger.With().Str("service", "note").Logger(),
		),
		RatingService: NewRatingService(repos.RatingRepository, repos.NoteRepository, logger.With().Str("service", "rating").Logger()),
	}
}

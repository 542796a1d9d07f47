package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/studyshare/internal/app/models"
	"github.com/yigit/studyshare/internal/app/models/dto"
	"github.com/yigit/studyshare/internal/app/repositories"
	"github.com/yigit/studyshare/internal/pkg/apperrors"
	"github.com/yigit/studyshare/internal/pkg/auth"
	"github.com/yigit/studyshare/internal/pkg/session"
)

// AuthSession is the cookie value and lifetime of a freshly opened session
type AuthSession struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService handles registration, login and session lookups
type AuthService struct {
	userRepo repositories.IUserRepository
	sessions *session.Manager
	logger   zerolog.Logger

	checkPassword func(stored, password string) bool

	// serializes the uniqueness check and insert of Register
	registerMu sync.Mutex
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	sessions *session.Manager,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,

		checkPassword: auth.CheckPassword,
	}
}

// Register creates a user and opens a session for it
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, *AuthSession, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	s.registerMu.Lock()
	if _, exists := s.userRepo.GetUserByUsername(req.Username); exists {
		s.registerMu.Unlock()
		return nil, nil, apperrors.NewCustomError(apperrors.ErrUsernameAlreadyExists, "Username already exists")
	}
	if _, exists := s.userRepo.GetUserByEmail(req.Email); exists {
		s.registerMu.Unlock()
		return nil, nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email already exists")
	}

	user := s.userRepo.CreateUser(models.NewUser{
		Username:    req.Username,
		Password:    hash,
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	s.registerMu.Unlock()

	s.logger.Info().Int64("userId", user.ID).Str("username", user.Username).Msg("User registered")

	sess, err := s.openSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// Login verifies credentials and opens a session. Unknown users and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *AuthSession, error) {
	stored := auth.DummyHash
	user, ok := s.userRepo.GetUserByUsername(req.Username)
	if ok {
		stored = user.Password
	}
	if !s.checkPassword(stored, req.Password) || !ok {
		s.logger.Warn().Str("username", req.Username).Msg("Failed login attempt")
		return nil, nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid username or password")
	}

	sess, err := s.openSession(user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Msg("User logged in")
	return user, sess, nil
}

// Logout destroys the session behind the cookie value. Unknown values are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	s.sessions.Logout(token)
}

// GetCurrentUser returns the user owning an authenticated session
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	user, ok := s.userRepo.GetUser(userID)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) openSession(userID int64) (*AuthSession, error) {
	token, sess, err := s.sessions.Login(userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userId", userID).Msg("Failed to open session")
		return nil, err
	}
	return &AuthSession{Token: token, ExpiresAt: sess.ExpiresAt}, nil
}

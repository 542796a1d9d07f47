package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/yigit/studyshare/internal/app/models"
	"github.com/yigit/studyshare/internal/app/models/dto"
	"github.com/yigit/studyshare/internal/app/repositories"
	"github.com/yigit/studyshare/internal/pkg/apperrors"
	"github.com/yigit/studyshare/internal/pkg/filestorage"
)

const octetStream = "application/octet-stream"

// UploadPolicy limits what may be uploaded as a note file
type UploadPolicy struct {
	MaxFileSize  int64
	AllowedTypes []string
}

// Download is a note together with the file that backs it
type Download struct {
	Note     *models.Note
	FilePath string
}

// NoteService defines the interface for note operations
type NoteService interface {
	GetNotes(ctx context.Context) []*models.Note
	GetNotesByCategory(ctx context.Context, categoryID int64) ([]*models.Note, error)
	GetNotesByUser(ctx context.Context, userID int64) ([]*models.Note, error)
	ViewNote(ctx context.Context, id int64) (*models.Note, error)
	CreateNote(ctx context.Context, userID int64, req *dto.CreateNoteRequest, file *multipart.FileHeader) (*models.Note, error)
	DownloadNote(ctx context.Context, id int64) (*Download, error)
}

type noteServiceImpl struct {
	noteRepo     repositories.INoteRepository
	categoryRepo repositories.ICategoryRepository
	userRepo     repositories.IUserRepository
	fileStorage  filestorage.FileStorage
	policy       UploadPolicy
	logger       zerolog.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(
	noteRepo repositories.INoteRepository,
	categoryRepo repositories.ICategoryRepository,
	userRepo repositories.IUserRepository,
	fileStorage filestorage.FileStorage,
	policy UploadPolicy,
	logger zerolog.Logger,
) NoteService {
	return &noteServiceImpl{
		noteRepo:     noteRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		fileStorage:  fileStorage,
		policy:       policy,
		logger:       logger,
	}
}

func (s *noteServiceImpl) GetNotes(ctx context.Context) []*models.Note {
	return s.noteRepo.GetNotes()
}

func (s *noteServiceImpl) GetNotesByCategory(ctx context.Context, categoryID int64) ([]*models.Note, error) {
	if _, ok := s.categoryRepo.GetCategory(categoryID); !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrCategoryNotFound, "Category not found")
	}
	return s.noteRepo.GetNotesByCategory(categoryID), nil
}

func (s *noteServiceImpl) GetNotesByUser(ctx context.Context, userID int64) ([]*models.Note, error) {
	if _, ok := s.userRepo.GetUser(userID); !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, "User not found")
	}
	return s.noteRepo.GetNotesByUser(userID), nil
}

// ViewNote returns the note with its view counter already incremented
func (s *noteServiceImpl) ViewNote(ctx context.Context, id int64) (*models.Note, error) {
	note, ok := s.noteRepo.IncrementNoteViews(id)
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrNoteNotFound, "Note not found")
	}
	return note, nil
}

// CreateNote validates the upload, records the note and stores its file.
// Nothing is recorded when validation fails; the note is removed again if
// the file cannot be written.
func (s *noteServiceImpl) CreateNote(ctx context.Context, userID int64, req *dto.CreateNoteRequest, file *multipart.FileHeader) (*models.Note, error) {
	if file == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrFileRequired, "No file uploaded")
	}

	if file.Size > s.policy.MaxFileSize {
		return nil, apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("File too large. Maximum size is %d bytes", s.policy.MaxFileSize))
	}

	fileType, err := s.resolveFileType(file)
	if err != nil {
		return nil, err
	}

	if _, ok := s.categoryRepo.GetCategory(req.CategoryID); !ok {
		return nil, apperrors.NewValidationError("Invalid category")
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening uploaded file: %w", err)
	}
	defer src.Close()

	note := s.noteRepo.CreateNote(models.NewNote{
		Title:       req.Title,
		Description: req.Description,
		FileName:    file.Filename,
		FileSize:    file.Size,
		FileType:    fileType,
		UserID:      userID,
		CategoryID:  req.CategoryID,
	})

	if _, err := s.fileStorage.SaveFile(ctx, note.ID, file.Filename, src); err != nil {
		s.noteRepo.DeleteNote(note.ID)
		s.logger.Error().Err(err).Int64("noteId", note.ID).Msg("File write failed, note rolled back")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFileWrite, err)
	}

	s.logger.Info().
		Int64("noteId", note.ID).
		Int64("userId", userID).
		Int64("categoryId", note.CategoryID).
		Str("fileType", fileType).
		Int64("fileSize", note.FileSize).
		Msg("Note uploaded")

	return note, nil
}

// resolveFileType returns the upload's MIME type if it is allowed. The
// client-declared type is used unless it is missing or generic, in which
// case the content is sniffed.
func (s *noteServiceImpl) resolveFileType(file *multipart.FileHeader) (string, error) {
	declared, _, err := mime.ParseMediaType(file.Header.Get("Content-Type"))
	if err != nil {
		declared = ""
	}

	if declared != "" && declared != octetStream {
		if mimetype.EqualsAny(declared, s.policy.AllowedTypes...) {
			return declared, nil
		}
		return "", s.rejectedType()
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening uploaded file: %w", err)
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("error detecting file type: %w", err)
	}

	for mt := detected; mt != nil; mt = mt.Parent() {
		if mimetype.EqualsAny(mt.String(), s.policy.AllowedTypes...) {
			resolved, _, _ := mime.ParseMediaType(mt.String())
			return resolved, nil
		}
	}
	return "", s.rejectedType()
}

func (s *noteServiceImpl) rejectedType() error {
	return apperrors.NewCustomError(apperrors.ErrFileTypeNotAllow,
		"Invalid file type. Only PDF, Word and PowerPoint files are allowed")
}

// DownloadNote resolves the note's file and counts the download
func (s *noteServiceImpl) DownloadNote(ctx context.Context, id int64) (*Download, error) {
	if _, ok := s.noteRepo.GetNote(id); !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrNoteNotFound, "Note not found")
	}

	path, ok := s.fileStorage.GetFilePath(id)
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrFileNotFound, "File not found")
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NewCustomError(apperrors.ErrFileNotFound, "File not found")
		}
		return nil, fmt.Errorf("error checking file: %w", err)
	}

	note, ok := s.noteRepo.IncrementNoteDownloads(id)
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrNoteNotFound, "Note not found")
	}

	return &Download{Note: note, FilePath: path}, nil
}

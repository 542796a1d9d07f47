package services

import (
	"context"

	"github.com/yigit/studyshare/internal/app/models"
	"github.com/yigit/studyshare/internal/app/repositories"
	"github.com/yigit/studyshare/internal/pkg/apperrors"
)

// CategoryService defines the interface for category operations
type CategoryService interface {
	GetCategories(ctx context.Context) []*models.Category
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
}

type categoryServiceImpl struct {
	categoryRepo repositories.ICategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repositories.ICategoryRepository) CategoryService {
	return &categoryServiceImpl{categoryRepo: categoryRepo}
}

func (s *categoryServiceImpl) GetCategories(ctx context.Context) []*models.Category {
	return s.categoryRepo.GetCategories()
}

func (s *categoryServiceImpl) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, ok := s.categoryRepo.GetCategory(id)
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrCategoryNotFound, "Category not found")
	}
	return category, nil
}

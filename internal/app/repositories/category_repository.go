package repositories

import (
	"sort"

	"github.com/yigit/studyshare/internal/app/models"
)

// CreateCategory stores a new category
func (s *MemStorage) CreateCategory(c models.NewCategory) *models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentCategoryID++
	category := &models.Category{
		ID:    s.currentCategoryID,
		Name:  c.Name,
		Color: c.Color,
		Icon:  c.Icon,
	}
	s.categories[category.ID] = category
	cp := *category
	return &cp
}

// GetCategory returns the category with the given id
func (s *MemStorage) GetCategory(id int64) (*models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, false
	}
	cp := *category
	return &cp, true
}

// GetCategories returns all categories in insertion order
func (s *MemStorage) GetCategories() []*models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cp := *c
		result = append(result, &cp)
	}
	// ids are assigned in insertion order
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

package seed

import (
	"github.com/rs/zerolog"

	appModels "github.com/yigit/studyshare/internal/app/models"
	appRepos "github.com/yigit/studyshare/internal/app/repositories"
)

// DefaultCategories are created, in this order, when the store starts empty.
var DefaultCategories = []appModels.NewCategory{
	{Name: "Computer Science", Color: "blue", Icon: "computer-line"},
	{Name: "Mathematics", Color: "green", Icon: "calculator-line"},
	{Name: "Business", Color: "yellow", Icon: "briefcase-line"},
	{Name: "Engineering", Color: "purple", Icon: "tools-line"},
	{Name: "Medicine", Color: "pink", Icon: "heart-pulse-line"},
	{Name: "Sciences", Color: "indigo", Icon: "flask-line"},
}

// CreateDefaultData seeds the fixed categories. It is a no-op when any
// category already exists.
func CreateDefaultData(categoryRepo appRepos.ICategoryRepository, lgr zerolog.Logger) {
	if existing := categoryRepo.GetCategories(); len(existing) > 0 {
		lgr.Info().Int("count", len(existing)).Msg("Categories already present, skipping seed")
		return
	}

	for _, c := range DefaultCategories {
		created := categoryRepo.CreateCategory(c)
		lgr.Debug().Int64("id", created.ID).Str("name", created.Name).Msg("Seeded category")
	}
	lgr.Info().Int("count", len(DefaultCategories)).Msg("Default categories created")
}

package seed

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appRepos "github.com/yigit/studyshare/internal/app/repositories"
)

func TestCreateDefaultData(t *testing.T) {
	store := appRepos.NewMemStorage()

	CreateDefaultData(store, zerolog.Nop())

	got := store.GetCategories()
	require.Len(t, got, 6)
	for i, c := range got {
		assert.Equal(t, int64(i+1), c.ID)
		assert.Equal(t, DefaultCategories[i].Name, c.Name)
		assert.Equal(t, DefaultCategories[i].Color, c.Color)
		assert.Equal(t, DefaultCategories[i].Icon, c.Icon)
	}
	assert.Equal(t, "Computer Science", got[0].Name)
	assert.Equal(t, "Sciences", got[5].Name)
}

func TestCreateDefaultData_Idempotent(t *testing.T) {
	store := appRepos.NewMemStorage()

	CreateDefaultData(store, zerolog.Nop())
	CreateDefaultData(store, zerolog.Nop())

	assert.Len(t, store.GetCategories(), 6)
}

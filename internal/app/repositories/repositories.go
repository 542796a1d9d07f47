package repositories

import (
	"sync"

	"github.com/yigit/studyshare/internal/app/models"
)

// IUserRepository defines user persistence operations
type IUserRepository interface {
	CreateUser(u models.NewUser) *models.User
	GetUser(id int64) (*models.User, bool)
	GetUserByUsername(username string) (*models.User, bool)
	GetUserByEmail(email string) (*models.User, bool)
}

// ICategoryRepository defines category persistence operations
type ICategoryRepository interface {
	CreateCategory(c models.NewCategory) *models.Category
	GetCategory(id int64) (*models.Category, bool)
	GetCategories() []*models.Category
}

// INoteRepository defines note persistence operations
type INoteRepository interface {
	CreateNote(n models.NewNote) *models.Note
	GetNote(id int64) (*models.Note, bool)
	GetNotes() []*models.Note
	GetNotesByCategory(categoryID int64) []*models.Note
	GetNotesByUser(userID int64) []*models.Note
	IncrementNoteViews(id int64) (*models.Note, bool)
	IncrementNoteDownloads(id int64) (*models.Note, bool)
	DeleteNote(id int64) bool
}

// IRatingRepository defines rating persistence operations
type IRatingRepository interface {
	GetRatingsByNote(noteID int64) []*models.Rating
	GetUserRating(userID, noteID int64) (*models.Rating, bool)
	CreateRating(r models.NewRating) *models.Rating
	UpdateRating(id int64, update models.RatingUpdate) (*models.Rating, bool)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository     IUserRepository
	CategoryRepository ICategoryRepository
	NoteRepository     INoteRepository
	RatingRepository   IRatingRepository
}

// NewRepositories exposes one MemStorage through the per-entity interfaces
func NewRepositories(store *MemStorage) *Repositories {
	return &Repositories{
		UserRepository:     store,
		CategoryRepository: store,
		NoteRepository:     store,
		RatingRepository:   store,
	}
}

// MemStorage is the in-memory entity store. Every collection is keyed by an
// id taken from its own monotonically increasing counter, so ids are never
// reused even after a record is removed. Returned records are copies.
type MemStorage struct {
	mu sync.RWMutex

	users      map[int64]*models.User
	categories map[int64]*models.Category
	notes      map[int64]*models.Note
	ratings    map[int64]*models.Rating

	currentUserID     int64
	currentCategoryID int64
	currentNoteID     int64
	currentRatingID   int64
}

// NewMemStorage creates an empty store. Categories are seeded separately.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:      make(map[int64]*models.User),
		categories: make(map[int64]*models.Category),
		notes:      make(map[int64]*models.Note),
		ratings:    make(map[int64]*models.Rating),
	}
}

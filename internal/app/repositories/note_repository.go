package repositories

import (
	"sort"
	"time"

	"github.com/yigit/studyshare/internal/app/models"
)

// CreateNote stores a new note stamped with the current time and zeroed counters
func (s *MemStorage) CreateNote(n models.NewNote) *models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentNoteID++
	note := &models.Note{
		ID:          s.currentNoteID,
		Title:       n.Title,
		Description: n.Description,
		FileName:    n.FileName,
		FileSize:    n.FileSize,
		FileType:    n.FileType,
		UploadDate:  time.Now().UTC(),
		UserID:      n.UserID,
		CategoryID:  n.CategoryID,
	}
	s.notes[note.ID] = note
	cp := *note
	return &cp
}

// GetNote returns the note with the given id
func (s *MemStorage) GetNote(id int64) (*models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return nil, false
	}
	cp := *note
	return &cp, true
}

// GetNotes returns all notes ordered by id
func (s *MemStorage) GetNotes() []*models.Note {
	return s.filterNotes(func(*models.Note) bool { return true })
}

// GetNotesByCategory returns the notes filed under categoryID
func (s *MemStorage) GetNotesByCategory(categoryID int64) []*models.Note {
	return s.filterNotes(func(n *models.Note) bool { return n.CategoryID == categoryID })
}

// GetNotesByUser returns the notes uploaded by userID
func (s *MemStorage) GetNotesByUser(userID int64) []*models.Note {
	return s.filterNotes(func(n *models.Note) bool { return n.UserID == userID })
}

func (s *MemStorage) filterNotes(match func(*models.Note) bool) []*models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Note, 0)
	for _, n := range s.notes {
		if match(n) {
			cp := *n
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// IncrementNoteViews adds one view and returns the updated note
func (s *MemStorage) IncrementNoteViews(id int64) (*models.Note, bool) {
	return s.updateNote(id, func(n *models.Note) { n.Views++ })
}

// IncrementNoteDownloads adds one download and returns the updated note
func (s *MemStorage) IncrementNoteDownloads(id int64) (*models.Note, bool) {
	return s.updateNote(id, func(n *models.Note) { n.Downloads++ })
}

func (s *MemStorage) updateNote(id int64, apply func(*models.Note)) (*models.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok {
		return nil, false
	}
	apply(note)
	cp := *note
	return &cp, true
}

// DeleteNote removes a note record. It exists only to undo a note whose file
// could not be stored; the id is not reused.
func (s *MemStorage) DeleteNote(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return false
	}
	delete(s.notes, id)
	return true
}

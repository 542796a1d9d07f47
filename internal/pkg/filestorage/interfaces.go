package filestorage

import (
	"context"
	"io"
)

// FileStorage defines the interface for note file storage operations
type FileStorage interface {
	// SaveFile writes content for a note and returns the stored path once the data is synced
	SaveFile(ctx context.Context, noteID int64, originalName string, content io.Reader) (string, error)

	// GetFilePath returns the stored path for a note
	GetFilePath(noteID int64) (string, bool)
}

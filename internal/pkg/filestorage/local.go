package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// LocalStorage saves note files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	logger   zerolog.Logger

	mu    sync.RWMutex
	paths map[int64]string // noteID -> file path
}

// NewLocalStorage creates a new LocalStorage instance, creating basePath if needed.
func NewLocalStorage(basePath string, logger zerolog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		logger:   logger,
		paths:    make(map[int64]string),
	}, nil
}

// FileName builds the stored file name for a note: "{noteID}_{originalName}".
// Directory components of originalName are dropped.
func FileName(noteID int64, originalName string) string {
	name := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		name = "file"
	}
	return strconv.FormatInt(noteID, 10) + "_" + name
}

// SaveFile writes content to the note's file and records its path. It returns
// only after the data has been flushed to disk.
func (ls *LocalStorage) SaveFile(ctx context.Context, noteID int64, originalName string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dstPath := filepath.Join(ls.basePath, FileName(noteID, originalName))

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		ls.logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}

	if err := writeAndSync(dst, content); err != nil {
		ls.logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file content")
		// Attempt to remove the partially created file
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	ls.mu.Lock()
	ls.paths[noteID] = dstPath
	ls.mu.Unlock()

	ls.logger.Info().Int64("noteId", noteID).Str("filename", originalName).Str("path", dstPath).Msg("File saved successfully")
	return dstPath, nil
}

func writeAndSync(dst *os.File, content io.Reader) error {
	if _, err := io.Copy(dst, content); err != nil {
		_ = dst.Close()
		return err
	}
	if err := dst.Sync(); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// GetFilePath returns the recorded path for noteID.
func (ls *LocalStorage) GetFilePath(noteID int64) (string, bool) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	p, ok := ls.paths[noteID]
	return p, ok
}

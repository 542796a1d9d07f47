package filestorage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*LocalStorage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	ls, err := NewLocalStorage(dir, zerolog.Nop())
	require.NoError(t, err)
	return ls, dir
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestNewLocalStorage_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewLocalStorage(dir, zerolog.Nop())
	require.NoError(t, err)

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	_, err = NewLocalStorage(dir, zerolog.Nop())
	require.NoError(t, err, "existing directory must be accepted")
}

func TestNewLocalStorage_FailsOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uploads")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := NewLocalStorage(path, zerolog.Nop())
	require.Error(t, err)
}

func TestSaveFile_WritesAndRecordsPath(t *testing.T) {
	ls, dir := newTestStorage(t)

	p, err := ls.SaveFile(context.Background(), 3, "lecture.pdf", strings.NewReader("%PDF-1.4 body"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "3_lecture.pdf"), p)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(data))

	got, ok := ls.GetFilePath(3)
	require.True(t, ok)
	assert.Equal(t, p, got)

	_, ok = ls.GetFilePath(4)
	assert.False(t, ok)
}

func TestSaveFile_FailureLeavesNothing(t *testing.T) {
	ls, dir := newTestStorage(t)

	_, err := ls.SaveFile(context.Background(), 1, "a.pdf", failingReader{})
	require.Error(t, err)

	_, ok := ls.GetFilePath(1)
	assert.False(t, ok)
	_, statErr := os.Stat(filepath.Join(dir, "1_a.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveFile_CanceledContext(t *testing.T) {
	ls, _ := newTestStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ls.SaveFile(ctx, 1, "a.pdf", strings.NewReader("x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		noteID   int64
		original string
		want     string
	}{
		{name: "plain", noteID: 1, original: "notes.pdf", want: "1_notes.pdf"},
		{name: "spaces kept", noteID: 12, original: "week 1.docx", want: "12_week 1.docx"},
		{name: "unix traversal", noteID: 2, original: "../../etc/passwd", want: "2_passwd"},
		{name: "windows path", noteID: 3, original: `C:\Users\me\slides.pptx`, want: "3_slides.pptx"},
		{name: "empty", noteID: 4, original: "", want: "4_file"},
		{name: "dot dot", noteID: 5, original: "..", want: "5_file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.noteID, tt.original))
		})
	}
}

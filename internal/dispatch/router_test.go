package dispatch

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convertly/convertly/internal/registry"
	"github.com/convertly/convertly/internal/tools"
	"github.com/convertly/convertly/pkg/logger"
	"github.com/convertly/convertly/pkg/storage"
)

type trackerSpy struct {
	paths []string
}

func (s *trackerSpy) Track(path string) { s.paths = append(s.paths, path) }

func newTestRouter(t *testing.T) (*Router, *storage.Layout, afero.Fs, *trackerSpy) {
	t.Helper()
	fs := afero.NewMemMapFs()
	log := logger.NewTestLogger()
	store := storage.NewLayout(fs, "uploads", "output", 50<<20, log)
	spy := &trackerSpy{}
	return NewRouter(registry.New(store, log), store, spy, log), store, fs, spy
}

func saveInput(t *testing.T, store *storage.Layout, name, content string) tools.Input {
	t.Helper()
	up, err := store.SaveUpload("files", name, strings.NewReader(content))
	require.NoError(t, err)
	return tools.Input{
		OriginalName: name,
		Path:         up.StoredPath,
		SizeBytes:    up.SizeBytes,
	}
}

func TestProcessUnknownTool(t *testing.T) {
	router, _, _, spy := newTestRouter(t)

	_, err := router.Process(context.Background(), "not-a-real-tool", nil, nil)
	require.Error(t, err)

	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnsupportedTool, de.Kind)
	assert.Equal(t, "Unsupported tool", de.Message)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus())
	assert.Empty(t, spy.paths)
}

func TestProcessEnforcesFileCount(t *testing.T) {
	router, store, fs, _ := newTestRouter(t)
	in := saveInput(t, store, "only.pdf", "%PDF-1.4")

	_, err := router.Process(context.Background(), "pdf-merge", []tools.Input{in}, nil)
	require.Error(t, err)

	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidFileCount, de.Kind)
	assert.Equal(t, "At least 2 PDF files are required for merging", de.Message)

	// the rejected upload is still cleaned up
	exists, _ := afero.Exists(fs, in.Path)
	assert.False(t, exists)
}

func TestProcessRemovesUploadsOnSuccess(t *testing.T) {
	router, store, fs, spy := newTestRouter(t)
	in := saveInput(t, store, "notes.txt", "one two three\nfour five\n")

	res, err := router.Process(context.Background(), "text-counter", []tools.Input{in}, nil)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.NotEmpty(t, res.FileID)
	assert.Equal(t, res.FileID, res.FileName)
	assert.Greater(t, res.FileSize, int64(0))
	assert.Contains(t, res.Message, "5 words")

	exists, _ := afero.Exists(fs, in.Path)
	assert.False(t, exists, "upload must be removed after processing")

	require.Len(t, spy.paths, 1)
	resolved, err := store.ResolveDownload(res.FileID)
	require.NoError(t, err)
	assert.Equal(t, resolved, spy.paths[0])
}

func TestProcessRemovesUploadsOnFailure(t *testing.T) {
	router, store, fs, spy := newTestRouter(t)
	in := saveInput(t, store, "broken.json", "{not json")

	_, err := router.Process(context.Background(), "json-to-csv", []tools.Input{in}, nil)
	require.Error(t, err)

	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindProcessingFailure, de.Kind)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus())
	assert.True(t, strings.HasPrefix(de.Message, "Expected a JSON array"), de.Message)

	exists, _ := afero.Exists(fs, in.Path)
	assert.False(t, exists, "upload must be removed after a failed run")
	assert.Empty(t, spy.paths)
}

func TestProcessTextOptionWithoutUpload(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	res, err := router.Process(context.Background(), "text-counter", nil,
		map[string]string{"text": "hello world"})
	require.NoError(t, err)
	assert.Equal(t, "11 characters, 2 words, 1 lines", res.Message)
}

func TestProcessRejectsInvalidOptionBeforeRunning(t *testing.T) {
	router, store, fs, spy := newTestRouter(t)
	in := saveInput(t, store, "data.json", `[{"a":1}]`)

	_, err := router.Process(context.Background(), "json-to-csv", []tools.Input{in},
		map[string]string{"delimiter": "pipe"})
	require.Error(t, err)

	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidOption, de.Kind)

	exists, _ := afero.Exists(fs, in.Path)
	assert.False(t, exists)
	assert.Empty(t, spy.paths)
}

func TestProcessTextToolWithNoSourceIsCallerError(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	_, err := router.Process(context.Background(), "text-counter", nil, nil)
	require.Error(t, err)

	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidOption, de.Kind)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus())
	assert.Equal(t, "No text provided", de.Message)
}

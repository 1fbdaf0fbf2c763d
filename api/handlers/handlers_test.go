package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convertly/convertly/api/handlers"
	"github.com/convertly/convertly/api/routes"
	"github.com/convertly/convertly/config"
	"github.com/convertly/convertly/internal/dispatch"
	"github.com/convertly/convertly/internal/lifecycle"
	"github.com/convertly/convertly/internal/registry"
	"github.com/convertly/convertly/pkg/logger"
	"github.com/convertly/convertly/pkg/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// frozenClock collects scheduled eviction callbacks so tests can fire them
// deterministically.
type frozenClock struct {
	fns []func()
}

type frozenTimer struct{}

func (frozenTimer) Stop() bool { return true }

func (c *frozenClock) AfterFunc(d time.Duration, f func()) lifecycle.Timer {
	c.fns = append(c.fns, f)
	return frozenTimer{}
}

// fire runs every scheduled eviction, as if the retention window elapsed.
func (c *frozenClock) fire() {
	for _, f := range c.fns {
		f()
	}
	c.fns = nil
}

type testServer struct {
	engine *gin.Engine
	fs     afero.Fs
	store  *storage.Layout
	clock  *frozenClock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := config.Default()
	cfg.MaxFilesPerRequest = 3

	log := logger.NewTestLogger()
	fs := afero.NewMemMapFs()
	store := storage.NewLayout(fs, cfg.UploadsDir, cfg.OutputDir, cfg.MaxUploadBytes, log)

	clock := &frozenClock{}
	life := lifecycle.NewWithClock(clock, cfg.RetentionWindow, store.Remove, log)

	reg := registry.New(store, log)
	router := dispatch.NewRouter(reg, store, life, log)
	h := handlers.NewHandlers(reg, router, store, cfg, log)

	engine := gin.New()
	routes.SetupRoutes(engine, h, cfg.AllowedOrigins)

	return &testServer{engine: engine, fs: fs, store: store, clock: clock}
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success     bool            `json:"success"`
	Data        json.RawMessage `json:"data"`
	Error       string          `json:"error"`
	Message     string          `json:"message"`
	DownloadURL string          `json:"downloadUrl"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/health", "/api/health"} {
		w := s.do(t, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
	}
}

func TestListTools(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, httptest.NewRequest(http.MethodGet, "/api/tools", nil))
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Greater(t, len(list), 30)
	assert.Equal(t, "pdf-merge", list[0]["id"])
}

func TestDescribeTool(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, httptest.NewRequest(http.MethodGet, "/api/tools/pdf-merge", nil))
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	var d map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, "PDF Merge", d["name"])
	assert.EqualValues(t, 2, d["minFiles"])
}

func TestDescribeToolLocalized(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, httptest.NewRequest(http.MethodGet, "/api/tools/pdf-merge?lang=es", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var d map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &d))
	assert.Equal(t, "Unir PDF", d["name"])

	req := httptest.NewRequest(http.MethodGet, "/api/tools/pdf-merge", nil)
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")
	w = s.do(t, req)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &d))
	assert.Equal(t, "PDF 合并", d["name"])
}

func TestDescribeUnknownTool(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, httptest.NewRequest(http.MethodGet, "/api/tools/no-such-tool", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Tool not found", env.Error)
}

func TestProcessUnsupportedTool(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tools/not-a-real-tool/process",
		strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := s.do(t, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Unsupported tool", env.Error)
}

func TestProcessAndDownload(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t,
		map[string]string{"notes.txt": "alpha beta gamma\ndelta\n"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/tools/text-counter/process", body)
	req.Header.Set("Content-Type", contentType)
	w := s.do(t, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	var result struct {
		FileID   string `json:"fileId"`
		FileName string `json:"fileName"`
		FileSize int64  `json:"fileSize"`
		Message  string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.NotEmpty(t, result.FileID)
	assert.Contains(t, result.Message, "4 words")
	assert.Equal(t, "/api/download/"+result.FileID, env.DownloadURL)

	// the upload itself must already be gone
	empty, err := afero.IsEmpty(s.fs, "uploads")
	require.NoError(t, err)
	assert.True(t, empty, "uploads directory should be empty after processing")

	dw := s.do(t, httptest.NewRequest(http.MethodGet, env.DownloadURL, nil))
	require.Equal(t, http.StatusOK, dw.Code)
	assert.Equal(t, "text/plain; charset=utf-8", dw.Header().Get("Content-Type"))
	assert.Contains(t, dw.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, dw.Header().Get("Content-Disposition"), result.FileID)
	assert.Equal(t, result.FileSize, int64(dw.Body.Len()))
}

func TestDownloadAfterRetentionWindow(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t,
		map[string]string{"notes.txt": "some text\n"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/tools/text-counter/process", body)
	req.Header.Set("Content-Type", contentType)
	w := s.do(t, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)

	// retention window elapses
	s.clock.fire()

	dw := s.do(t, httptest.NewRequest(http.MethodGet, env.DownloadURL, nil))
	assert.Equal(t, http.StatusNotFound, dw.Code)
	denv := decodeEnvelope(t, dw)
	assert.False(t, denv.Success)
	assert.Equal(t, "File not found", denv.Error)
}

func TestProcessRejectsTooManyFiles(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{
		"a.txt": "a", "b.txt": "b", "c.txt": "c", "d.txt": "d",
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/tools/text-counter/process", body)
	req.Header.Set("Content-Type", contentType)
	w := s.do(t, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "At most 3 files")
}

func TestProcessInvalidFileCountMessage(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{"one.pdf": "%PDF-1.4"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/tools/pdf-merge/process", body)
	req.Header.Set("Content-Type", contentType)
	w := s.do(t, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "At least 2 PDF files are required for merging", env.Error)
}

func TestDownloadRejectsTraversal(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, httptest.NewRequest(http.MethodGet, "/api/download/..%2Fsecret.txt", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decodeEnvelope(t, w).Success)
}

func TestUnmatchedRouteUsesEnvelope(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Not found", env.Error)
}

func TestProcessWithTextOptionOnly(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tools/text-counter/process",
		strings.NewReader("text=hello+world"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := s.do(t, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	var result struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "11 characters, 2 words, 1 lines", result.Message)
}

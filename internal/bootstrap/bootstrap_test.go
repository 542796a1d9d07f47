package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studyshare/internal/app/models"
	"github.com/yigit/studyshare/internal/config"
)

const (
	pdfType  = "application/pdf"
	pdfBytes = "%PDF-1.4\nlecture notes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Server.Mode = "test"
	cfg.Server.StoragePath = filepath.Join(t.TempDir(), "uploads")
	cfg.Session.Secret = "test-secret"
	cfg.Session.CookieName = "studyshare.sid"
	cfg.Session.MaxAge = "1h"
	cfg.Session.CleanupInterval = "1h"
	cfg.Session.Issuer = "studyshare.test"
	cfg.Upload.MaxFileSize = 10 * 1024 * 1024
	cfg.Upload.AllowedTypes = config.DefaultAllowedTypes
	cfg.Logging.Level = "error"
	cfg.Logging.Format = "json"
	return cfg
}

type testApp struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	deps   *Dependencies
	cfg    *config.Config
}

func newTestApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()

	deps, err := BuildDependencies(cfg, zerolog.Nop())
	require.NoError(t, err)
	router, err := SetupRouter(cfg, deps, zerolog.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testApp{t: t, srv: srv, client: newClient(t), deps: deps, cfg: cfg}
}

func newClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (a *testApp) do(client *http.Client, method, path string, body io.Reader, contentType string) (*http.Response, []byte) {
	a.t.Helper()

	req, err := http.NewRequest(method, a.srv.URL+path, body)
	require.NoError(a.t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := client.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp, data
}

func (a *testApp) json(client *http.Client, method, path string, payload interface{}) (int, []byte) {
	a.t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(a.t, err)
		body = bytes.NewReader(raw)
	}
	resp, data := a.do(client, method, path, body, "application/json")
	return resp.StatusCode, data
}

func (a *testApp) upload(client *http.Client, fields map[string]string, fileName, contentType string, content []byte) (int, []byte) {
	a.t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(a.t, w.WriteField(k, v))
	}
	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(a.t, err)
		_, err = part.Write(content)
		require.NoError(a.t, err)
	}
	require.NoError(a.t, w.Close())

	resp, data := a.do(client, http.MethodPost, "/api/notes", &buf, w.FormDataContentType())
	return resp.StatusCode, data
}

func (a *testApp) register(client *http.Client, username string) models.User {
	a.t.Helper()
	status, body := a.json(client, http.MethodPost, "/api/register", map[string]string{
		"username": username, "password": "pw-" + username, "displayName": username, "email": username + "@college.edu",
	})
	require.Equal(a.t, http.StatusCreated, status, string(body))
	var u models.User
	require.NoError(a.t, json.Unmarshal(body, &u))
	return u
}

func (a *testApp) uploadNote(client *http.Client, categoryID int64) models.Note {
	a.t.Helper()
	status, body := a.upload(client, map[string]string{
		"title": "Week 1", "description": "Intro", "categoryId": fmt.Sprint(categoryID),
	}, "week1.pdf", pdfType, []byte(pdfBytes))
	require.Equal(a.t, http.StatusCreated, status, string(body))
	var n models.Note
	require.NoError(a.t, json.Unmarshal(body, &n))
	return n
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func message(t *testing.T, body []byte) string {
	t.Helper()
	return decode[map[string]interface{}](t, body)["message"].(string)
}

func TestHealthAndCategories(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	status, body := app.json(app.client, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	status, body = app.json(app.client, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, status)
	cats := decode[[]models.Category](t, body)
	require.Len(t, cats, 6)
	assert.Equal(t, "Computer Science", cats[0].Name)
	assert.Equal(t, "Sciences", cats[5].Name)
	assert.Equal(t, "flask-line", cats[5].Icon)

	status, body = app.json(app.client, http.MethodGet, "/api/categories/4", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Engineering", decode[models.Category](t, body).Name)

	status, _ = app.json(app.client, http.MethodGet, "/api/categories/7", nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = app.json(app.client, http.MethodGet, "/api/categories/-1", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = app.json(app.client, http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", string(body))
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	status, body := app.json(app.client, http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", message(t, body))

	status, body = app.json(app.client, http.MethodPost, "/api/register", map[string]string{
		"username": "alice", "password": "secret", "displayName": "Alice", "email": "alice@college.edu",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	raw := decode[map[string]interface{}](t, body)
	assert.NotContains(t, raw, "password")
	assert.Equal(t, "alice", raw["username"])
	assert.Nil(t, raw["profileImage"])

	// registration logs the user in
	status, body = app.json(app.client, http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", decode[models.User](t, body).Username)
	assert.NotContains(t, string(body), "password")

	other := newClient(t)
	status, body = app.json(other, http.MethodPost, "/api/register", map[string]string{
		"username": "alice", "password": "x", "displayName": "A", "email": "new@college.edu",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Username already exists", message(t, body))

	status, body = app.json(other, http.MethodPost, "/api/register", map[string]string{
		"username": "alice2", "password": "x", "displayName": "A", "email": "alice@college.edu",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already exists", message(t, body))

	status, _ = app.json(other, http.MethodPost, "/api/register", map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = app.json(other, http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid username or password", message(t, body))

	status, body = app.json(other, http.MethodPost, "/api/login", map[string]string{"username": "ghost", "password": "secret"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid username or password", message(t, body))

	status, _ = app.json(other, http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "secret"})
	require.Equal(t, http.StatusOK, status)
	status, _ = app.json(other, http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = app.json(other, http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = app.json(other, http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// the first client's session is unaffected
	status, _ = app.json(app.client, http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusOK, status)

	// logout without a session still succeeds
	status, _ = app.json(newClient(t), http.MethodPost, "/api/logout", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestForgedCookieIsRejected(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	req, err := http.NewRequest(http.MethodGet, app.srv.URL+"/api/user", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "studyshare.sid", Value: "not-a-token"})
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNotesLifecycle(t *testing.T) {
	app := newTestApp(t, testConfig(t))
	user := app.register(app.client, "alice")

	status, _ := app.upload(newClient(t), map[string]string{
		"title": "T", "description": "D", "categoryId": "2",
	}, "a.pdf", pdfType, []byte(pdfBytes))
	assert.Equal(t, http.StatusUnauthorized, status)

	note := app.uploadNote(app.client, 2)
	assert.Equal(t, user.ID, note.UserID)
	assert.Equal(t, "week1.pdf", note.FileName)
	assert.Equal(t, int64(len(pdfBytes)), note.FileSize)
	assert.Zero(t, note.Views)
	assert.Zero(t, note.Downloads)

	stored := filepath.Join(app.cfg.Server.StoragePath, fmt.Sprintf("%d_week1.pdf", note.ID))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, string(data))

	status, body := app.json(app.client, http.MethodGet, "/api/notes/category/2", nil)
	require.Equal(t, http.StatusOK, status)
	inCategory := decode[[]models.Note](t, body)
	require.Len(t, inCategory, 1)
	assert.Equal(t, note.ID, inCategory[0].ID)

	status, body = app.json(app.client, http.MethodGet, "/api/notes/category/3", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", string(body))

	status, body = app.json(app.client, http.MethodGet, "/api/notes/category/99", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Category not found", message(t, body))

	status, body = app.json(app.client, http.MethodGet, "/api/notes/category/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid category ID", message(t, body))

	status, body = app.json(app.client, http.MethodGet, fmt.Sprintf("/api/notes/user/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Note](t, body), 1)

	status, _ = app.json(app.client, http.MethodGet, "/api/notes/user/77", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// each detail fetch counts exactly one view
	for want := int64(1); want <= 2; want++ {
		status, body = app.json(app.client, http.MethodGet, fmt.Sprintf("/api/notes/%d", note.ID), nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, want, decode[models.Note](t, body).Views)
	}

	status, body = app.json(app.client, http.MethodGet, "/api/notes/9999", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Note not found", message(t, body))
	assert.Len(t, app.deps.Store.GetNotes(), 1)

	status, _ = app.json(app.client, http.MethodGet, "/api/notes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	resp, data := app.do(app.client, http.MethodGet, fmt.Sprintf("/api/notes/%d/download", note.ID), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, pdfBytes, string(data))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "week1.pdf")

	got, ok := app.deps.Store.GetNote(note.ID)
	require.True(t, ok)
	assert.Equal(t, int64(1), got.Downloads)
	assert.Equal(t, int64(2), got.Views)

	resp, _ = app.do(app.client, http.MethodGet, "/api/notes/9999/download", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadRejections(t *testing.T) {
	app := newTestApp(t, testConfig(t))
	app.register(app.client, "alice")
	fields := map[string]string{"title": "T", "description": "D", "categoryId": "1"}

	status, body := app.upload(app.client, fields, "photo.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, message(t, body), "Invalid file type")

	oversized := bytes.Repeat([]byte("a"), 10*1024*1024+1)
	status, _ = app.upload(app.client, fields, "big.pdf", pdfType, oversized)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = app.upload(app.client, fields, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No file uploaded", message(t, body))

	status, _ = app.upload(app.client, map[string]string{"title": "T", "categoryId": "1"}, "a.pdf", pdfType, []byte(pdfBytes))
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = app.upload(app.client, map[string]string{"title": "T", "description": "D", "categoryId": "42"}, "a.pdf", pdfType, []byte(pdfBytes))
	assert.Equal(t, http.StatusBadRequest, status)

	assert.Empty(t, app.deps.Store.GetNotes())
	entries, err := os.ReadDir(app.cfg.Server.StoragePath)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRatings(t *testing.T) {
	app := newTestApp(t, testConfig(t))
	app.register(app.client, "alice")
	note := app.uploadNote(app.client, 1)
	ratePath := fmt.Sprintf("/api/notes/%d/rate", note.ID)

	status, _ := app.json(newClient(t), http.MethodPost, ratePath, map[string]interface{}{"rating": 4})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := app.json(app.client, http.MethodPost, ratePath, map[string]interface{}{"rating": 3, "comment": "ok"})
	require.Equal(t, http.StatusCreated, status, string(body))
	first := decode[models.Rating](t, body)
	require.NotNil(t, first.Comment)

	status, body = app.json(app.client, http.MethodPost, ratePath, map[string]interface{}{"rating": 5, "comment": "great"})
	require.Equal(t, http.StatusCreated, status)
	second := decode[models.Rating](t, body)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Rating)
	assert.Equal(t, "great", *second.Comment)

	status, body = app.json(app.client, http.MethodGet, fmt.Sprintf("/api/notes/%d/ratings", note.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Rating](t, body), 1)

	status, body = app.json(app.client, http.MethodGet, fmt.Sprintf("/api/notes/%d/myrating", note.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, second.ID, decode[models.Rating](t, body).ID)

	bob := newClient(t)
	app.register(bob, "bob")
	status, body = app.json(bob, http.MethodGet, fmt.Sprintf("/api/notes/%d/myrating", note.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Rating not found", message(t, body))

	for _, bad := range []map[string]interface{}{{"rating": 0}, {"rating": 6}, {"comment": "no score"}} {
		status, _ = app.json(app.client, http.MethodPost, ratePath, bad)
		assert.Equal(t, http.StatusBadRequest, status, bad)
	}

	status, _ = app.json(app.client, http.MethodPost, "/api/notes/9999/rate", map[string]interface{}{"rating": 2})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = app.json(app.client, http.MethodGet, "/api/notes/9999/ratings", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = app.json(app.client, http.MethodPost, "/api/notes/9999/rate", map[string]interface{}{})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Note not found", message(t, body))
}

func TestRatings_EmptyComment(t *testing.T) {
	app := newTestApp(t, testConfig(t))
	app.register(app.client, "alice")
	note := app.uploadNote(app.client, 1)
	ratePath := fmt.Sprintf("/api/notes/%d/rate", note.ID)

	status, body := app.json(app.client, http.MethodPost, ratePath, map[string]interface{}{"rating": 3, "comment": ""})
	require.Equal(t, http.StatusCreated, status, string(body))
	first := decode[models.Rating](t, body)
	require.NotNil(t, first.Comment)
	assert.Equal(t, "", *first.Comment)

	status, body = app.json(app.client, http.MethodPost, ratePath, map[string]interface{}{"rating": 4})
	require.Equal(t, http.StatusCreated, status)
	assert.Nil(t, decode[models.Rating](t, body).Comment)

	status, body = app.json(app.client, http.MethodPost, ratePath, map[string]interface{}{"rating": 5, "comment": ""})
	require.Equal(t, http.StatusCreated, status)
	resubmitted := decode[models.Rating](t, body)
	assert.Equal(t, first.ID, resubmitted.ID)
	require.NotNil(t, resubmitted.Comment)
	assert.Equal(t, "", *resubmitted.Comment)
}

func TestStaticFallback(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.StaticDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Server.StaticDir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Server.StaticDir, "app.js"), []byte("console.log(1)"), 0o644))
	app := newTestApp(t, cfg)

	resp, body := app.do(app.client, http.MethodGet, "/notes/12", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<html>app</html>", string(body))

	resp, body = app.do(app.client, http.MethodGet, "/app.js", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "console.log(1)", string(body))

	resp, body = app.do(app.client, http.MethodGet, "/api/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", message(t, body))
}

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tiaraw/portfolio-backend/blobstore"
	"github.com/tiaraw/portfolio-backend/database"
)

const (
	testUser = "admin"
	testPass = "hunter2"
)

// newTestEnv builds a full router over an in-memory database and blob store
// and returns a server plus a cookie-keeping client.
func newTestEnv(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	d := database.New(db, blobstore.NewMemoryStore())
	router := newRouter(d, withConfig(map[string]string{
		"ADMIN_USER": testUser,
		"ADMIN_PASS": testPass,
	}))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return server, &http.Client{Jar: jar}
}

func getJSON(t *testing.T, client *http.Client, url string, target any) int {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if target != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
	}
	return resp.StatusCode
}

func sendJSON(t *testing.T, client *http.Client, method, url string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// solveCaptcha fetches a challenge and returns its id and solution.
func solveCaptcha(t *testing.T, client *http.Client, baseURL string) (string, string) {
	t.Helper()

	var challenge struct {
		ID       string `json:"id"`
		Question string `json:"question"`
	}
	status := getJSON(t, client, baseURL+"/auth/captcha", &challenge)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, challenge.ID)

	parts := strings.Split(strings.TrimSuffix(challenge.Question, " = ?"), " + ")
	require.Len(t, parts, 2)
	a, err := strconv.Atoi(parts[0])
	require.NoError(t, err)
	b, err := strconv.Atoi(parts[1])
	require.NoError(t, err)

	return challenge.ID, strconv.Itoa(a + b)
}

// login performs the full captcha+credentials flow for the test admin.
func login(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()

	captchaID, answer := solveCaptcha(t, client, baseURL)
	resp, _ := sendJSON(t, client, http.MethodPost, baseURL+"/auth/login", map[string]string{
		"username":       testUser,
		"password":       testPass,
		"captcha_id":     captchaID,
		"captcha_answer": answer,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// uploadFile posts a multipart file to an admin upload bucket.
func uploadFile(t *testing.T, client *http.Client, url, filename, contents string) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, contents)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

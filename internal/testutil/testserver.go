package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio_backend/internal/app"
	"portfolio_backend/internal/config"
	"portfolio_backend/internal/storage"
)

// AdminToken is accepted by the admin API of every test server
const AdminToken = "test-admin-token"

type TestServer struct {
	Server  *httptest.Server
	DB      *gorm.DB
	Storage *storage.MemoryStorage
	client  *http.Client
}

// NewTestServer starts the full router over a fresh database and an in-memory
// storage backend
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := NewTestDB(t)
	store := storage.NewMemoryStorage("https://cdn.test")

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Admin.Token = AdminToken
	cfg.Upload.MaxSize = 1 << 20
	cfg.Upload.DefaultMime = "image/jpeg"

	server := httptest.NewServer(app.NewRouter(cfg, db, store))
	t.Cleanup(server.Close)

	return &TestServer{
		Server:  server,
		DB:      db,
		Storage: store,
		client: &http.Client{
			// redirects are asserted, not followed
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// SendRequest sends body as JSON. An empty token sends no Authorization header.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, req, token)
}

// Upload is one file part of a multipart request
type Upload struct {
	Field    string
	Filename string
	Data     []byte
}

// SendMultipart posts fields and an optional file part as multipart/form-data
func (ts *TestServer) SendMultipart(t *testing.T, method, path, token string, fields map[string]string, file *Upload) (*http.Response, string) {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return ts.do(t, req, token)
}

func (ts *TestServer) do(t *testing.T, req *http.Request, token string) (*http.Response, string) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return res, string(raw)
}

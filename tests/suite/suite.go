package suite

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"imagehub/internal/app"
	"imagehub/internal/config"
	"imagehub/internal/storage/postgresql/pgtest"

	"github.com/stretchr/testify/require"
)

// Envelope общий ответ API
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
}

type Suite struct {
	*testing.T
	Cfg    *config.Config
	Server *httptest.Server
}

// New поднимает всё приложение поверх PostgreSQL в контейнере и локального хранилища во временной папке
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancelCtx := context.WithTimeout(context.Background(), 5*time.Minute)

	cfg := &config.Config{
		Env:         "local",
		DSN:         pgtest.DSN(t),
		SlugRetries: 3,
		HTTP: config.HTTPConfig{
			Port:    "0",
			Timeout: 30 * time.Second,
		},
		FileStorage: config.FileStorageConfig{
			Provider: config.StorageLocal,
			BaseDir:  t.TempDir(),
			BaseURL:  "/media",
			MaxSize:  10 << 20,
		},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	application, err := app.New(ctx, log, cfg)
	require.NoError(t, err)

	server := httptest.NewServer(application.HTTPServer)

	t.Cleanup(func() {
		t.Helper()
		server.Close()
		_ = application.Stop()
		cancelCtx()
	})

	return ctx, &Suite{
		T:      t,
		Cfg:    cfg,
		Server: server,
	}
}

// With привязывает suite к подтесту, чтобы require останавливал именно его
func (s *Suite) With(t *testing.T) *Suite {
	return &Suite{T: t, Cfg: s.Cfg, Server: s.Server}
}

func (s *Suite) Do(req *http.Request) (*http.Response, Envelope) {
	s.Helper()

	resp, err := s.Server.Client().Do(req)
	require.NoError(s.T, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(s.T, err)

	var env Envelope
	if len(body) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(s.T, json.Unmarshal(body, &env), string(body))
	}

	return resp, env
}

func (s *Suite) JSON(method, path, body string) (*http.Response, Envelope) {
	s.Helper()

	req, err := http.NewRequest(method, s.Server.URL+path, strings.NewReader(body))
	require.NoError(s.T, err)
	req.Header.Set("Content-Type", "application/json")

	return s.Do(req)
}

func (s *Suite) Get(path string) (*http.Response, Envelope) {
	s.Helper()

	req, err := http.NewRequest(http.MethodGet, s.Server.URL+path, nil)
	require.NoError(s.T, err)

	return s.Do(req)
}

func (s *Suite) Delete(path string) *http.Response {
	s.Helper()

	req, err := http.NewRequest(http.MethodDelete, s.Server.URL+path, nil)
	require.NoError(s.T, err)

	resp, _ := s.Do(req)
	return resp
}

func (s *Suite) Upload(folder, filename string, content []byte) (*http.Response, Envelope) {
	s.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image_file", filename)
	require.NoError(s.T, err)

	_, err = part.Write(content)
	require.NoError(s.T, err)
	require.NoError(s.T, writer.Close())

	req, err := http.NewRequest(http.MethodPost, s.Server.URL+"/api/v1/folders/"+folder+"/images", body)
	require.NoError(s.T, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return s.Do(req)
}

// Raw скачивает файл без разбора JSON
func (s *Suite) Raw(path string) (int, []byte) {
	s.Helper()

	resp, err := s.Server.Client().Get(s.Server.URL + path)
	require.NoError(s.T, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(s.T, err)

	return resp.StatusCode, body
}

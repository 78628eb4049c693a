package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/vidhub/api/internal/adapters/handler/http"
	repo "github.com/vidhub/api/internal/adapters/repository/postgres"
	"github.com/vidhub/api/internal/config"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
	"github.com/vidhub/api/internal/core/services"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// memoryMediaStore stands in for the S3 adapter so the tests need no
// object-storage container.
type memoryMediaStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryMediaStore() *memoryMediaStore {
	return &memoryMediaStore{objects: make(map[string][]byte)}
}

func (m *memoryMediaStore) Upload(_ context.Context, folder string, file ports.FileUpload) (*domain.Asset, error) {
	data, err := io.ReadAll(file.Reader)
	if err != nil {
		return nil, err
	}
	key := folder + "/" + uuid.NewString()
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()
	return &domain.Asset{URL: "http://media.test/" + key, Key: key}, nil
}

func (m *memoryMediaStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *memoryMediaStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	Media       *memoryMediaStore
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	cfg := &config.Config{
		DatabaseURL:        dbURL,
		AccessTokenSecret:  "test-access-secret",
		RefreshTokenSecret: "test-refresh-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	media := newMemoryMediaStore()

	userRepo := repo.NewUserRepository(db)
	videoRepo := repo.NewVideoRepository(db)
	commentRepo := repo.NewCommentRepository(db)
	likeRepo := repo.NewLikeRepository(db)
	subscriptionRepo := repo.NewSubscriptionRepository(db)
	tweetRepo := repo.NewTweetRepository(db)
	playlistRepo := repo.NewPlaylistRepository(db)
	dashboardRepo := repo.NewDashboardRepository(db)

	hasher := services.NewBcryptHasher()
	tokens := services.NewTokenService(cfg)

	gate := handler.NewAuthGate(tokens, userRepo)
	router := handler.NewHandler(handler.Handlers{
		Auth:         handler.NewAuthHandler(services.NewAuthService(userRepo, hasher, tokens, media, logger), "", cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User:         handler.NewUserHandler(services.NewUserService(userRepo, media, logger)),
		Video:        handler.NewVideoHandler(services.NewVideoService(videoRepo, userRepo, media, logger)),
		Comment:      handler.NewCommentHandler(services.NewCommentService(commentRepo, videoRepo)),
		Like:         handler.NewLikeHandler(services.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)),
		Subscription: handler.NewSubscriptionHandler(services.NewSubscriptionService(subscriptionRepo, userRepo)),
		Tweet:        handler.NewTweetHandler(services.NewTweetService(tweetRepo, userRepo)),
		Playlist:     handler.NewPlaylistHandler(services.NewPlaylistService(playlistRepo, videoRepo)),
		Dashboard:    handler.NewDashboardHandler(services.NewDashboardService(dashboardRepo, videoRepo)),
	}, gate)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		Media:       media,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// postJSON issues a POST with a JSON body and the given session cookies.
func (app *TestApp) postJSON(t *testing.T, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, app.Server.URL+path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func (app *TestApp) get(t *testing.T, path string, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, app.Server.URL+path, nil)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func (app *TestApp) registerUser(t *testing.T, handle, email, password string) {
	t.Helper()

	resp := app.postJSON(t, "/api/users/register", map[string]string{
		"handle":       handle,
		"email":        email,
		"display_name": handle,
		"password":     password,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

// session holds the two cookies a login or refresh produced.
type session struct {
	Access  *http.Cookie
	Refresh *http.Cookie
}

func sessionFrom(t *testing.T, resp *http.Response) session {
	t.Helper()

	var s session
	for _, cookie := range resp.Cookies() {
		switch cookie.Name {
		case "accessToken":
			s.Access = cookie
		case "refreshToken":
			s.Refresh = cookie
		}
	}
	require.NotNil(t, s.Access, "accessToken cookie should be set")
	require.NotNil(t, s.Refresh, "refreshToken cookie should be set")
	return s
}

func (app *TestApp) login(t *testing.T, email, password string) session {
	t.Helper()

	resp := app.postJSON(t, "/api/users/login", map[string]string{
		"email":    email,
		"password": password,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return sessionFrom(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// multipartBody builds a multipart form from string fields and named files.
func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for name, content := range files {
		part, err := writer.CreateFormFile(name, name+".bin")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

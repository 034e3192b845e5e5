package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/contact-funnel/internal/api/http/handlers"
	"github.com/spec-kit/contact-funnel/internal/auth"
	"github.com/spec-kit/contact-funnel/internal/config"
	"github.com/spec-kit/contact-funnel/internal/domain"
	"github.com/spec-kit/contact-funnel/internal/events"
	"github.com/spec-kit/contact-funnel/internal/observability"
	"github.com/spec-kit/contact-funnel/internal/persistence"
	"github.com/spec-kit/contact-funnel/internal/repository"
	"github.com/spec-kit/contact-funnel/internal/service"
)

type memUserRepo struct {
	byID map[string]*domain.User
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range m.byID {
		if existing.Email == strings.ToLower(user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = uuid.NewString()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := m.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *user
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.byID {
		if user.Email == strings.ToLower(email) {
			cp := *user
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(m.byID))
	for _, user := range m.byID {
		users = append(users, *user)
	}
	return users, nil
}

type memSubmissionRepo struct {
	byID map[string]*domain.FormSubmission
	seq  int
}

func (m *memSubmissionRepo) Create(_ context.Context, sub *domain.FormSubmission) error {
	sub.ID = uuid.NewString()
	m.seq++
	sub.CreatedAt = time.Unix(int64(m.seq), 0)
	sub.UpdatedAt = sub.CreatedAt
	cp := *sub
	m.byID[sub.ID] = &cp
	return nil
}

func (m *memSubmissionRepo) Update(_ context.Context, sub *domain.FormSubmission) error {
	if _, ok := m.byID[sub.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *sub
	m.byID[sub.ID] = &cp
	return nil
}

func (m *memSubmissionRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	return nil
}

func (m *memSubmissionRepo) GetByID(_ context.Context, id string) (*domain.FormSubmission, error) {
	sub, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *sub
	return &cp, nil
}

func (m *memSubmissionRepo) List(_ context.Context) ([]domain.FormSubmission, error) {
	subs := make([]domain.FormSubmission, 0, len(m.byID))
	for _, sub := range m.byID {
		subs = append(subs, *sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].CreatedAt.After(subs[j].CreatedAt) })
	return subs, nil
}

type testEnv struct {
	app   *fiber.App
	users *memUserRepo
	auth  *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Env: "development"},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTLHours: 24,
			BcryptCost:    4,
		},
		HTTP: config.HTTPConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			BodyLimitBytes: 10 * 1024 * 1024,
		},
	}

	userRepo := &memUserRepo{byID: make(map[string]*domain.User)}
	subRepo := &memSubmissionRepo{byID: make(map[string]*domain.FormSubmission)}
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	userService := service.NewUserService(*cfg, userRepo)
	submissionService := service.NewSubmissionService(subRepo, dispatcher)
	middleware := auth.NewMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{BodyLimit: cfg.HTTP.BodyLimitBytes})
	RegisterMiddlewares(app, cfg, zap.NewNop(), observability.NewMetrics())
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Env, &persistence.Postgres{}),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Forms:          handlers.NewFormsHandler(submissionService),
		AuthMiddleware: middleware,
	})

	return &testEnv{app: app, users: userRepo, auth: authService}
}

func (env *testEnv) request(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func (env *testEnv) signup(t *testing.T, name, email, password string) {
	t.Helper()
	resp, _ := env.request(t, "POST", "/api/auth/signup", "", map[string]string{
		"fullName": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func (env *testEnv) token(t *testing.T, email, password string) string {
	t.Helper()
	resp, body := env.request(t, "POST", "/api/auth/signin", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (env *testEnv) promote(t *testing.T, email string) {
	t.Helper()
	user, err := env.users.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	user.IsAdmin = true
	require.NoError(t, env.users.Update(context.Background(), user))
}

func TestSignupFlow(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, body := env.request(t, "POST", "/api/auth/signup", "", map[string]string{
		"fullName": "Jane Doe", "email": "Jane@X.com", "password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, body["success"])

	user := body["user"].(map[string]any)
	require.Equal(t, "jane@x.com", user["email"])
	_, hasHash := user["passwordHash"]
	require.False(t, hasHash)

	// duplicate, case-insensitive
	resp, body = env.request(t, "POST", "/api/auth/signup", "", map[string]string{
		"fullName": "Jane Again", "email": "JANE@x.com", "password": "other",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, false, body["success"])

	// missing fields
	resp, _ = env.request(t, "POST", "/api/auth/signup", "", map[string]string{"email": "x@y.com"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSigninUniformFailure(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.signup(t, "Jane", "jane@x.com", "pw123456")

	respWrong, bodyWrong := env.request(t, "POST", "/api/auth/signin", "", map[string]string{
		"email": "jane@x.com", "password": "bad",
	})
	respGhost, bodyGhost := env.request(t, "POST", "/api/auth/signin", "", map[string]string{
		"email": "ghost@x.com", "password": "bad",
	})

	require.Equal(t, http.StatusUnauthorized, respWrong.StatusCode)
	require.Equal(t, http.StatusUnauthorized, respGhost.StatusCode)
	require.Equal(t, bodyWrong["message"], bodyGhost["message"])
}

func TestAdminLoginRejectsNonAdmin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.signup(t, "Jane", "jane@x.com", "pw123456")

	resp, _ := env.request(t, "POST", "/api/auth/admin/login", "", map[string]string{
		"email": "jane@x.com", "password": "pw123456",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	env.promote(t, "jane@x.com")
	resp, body := env.request(t, "POST", "/api/auth/admin/login", "", map[string]string{
		"email": "jane@x.com", "password": "pw123456",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	user := body["user"].(map[string]any)
	require.Equal(t, true, user["isAdmin"])
}

func TestUsersListIsAdminGated(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.signup(t, "Jane", "jane@x.com", "pw123456")
	userToken := env.token(t, "jane@x.com", "pw123456")

	// no token
	resp, _ := env.request(t, "GET", "/api/auth/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// valid non-admin token
	resp, _ = env.request(t, "GET", "/api/auth/users", userToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// garbage token
	resp, _ = env.request(t, "GET", "/api/auth/users", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// admin token: the guard re-reads the store, so a promotion after
	// issuance is honored
	env.promote(t, "jane@x.com")
	req := httptest.NewRequest("GET", "/api/auth/users", nil)
	req.Header.Set(auth.TokenHeader, userToken)
	listResp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	raw, err := io.ReadAll(listResp.Body)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "passwordHash")
	require.NotContains(t, string(raw), "$2a$")

	var users []map[string]any
	require.NoError(t, json.Unmarshal(raw, &users))
	require.Len(t, users, 1)
}

func TestUserCRUD(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.signup(t, "Jane", "jane@x.com", "pw123456")
	env.signup(t, "Bob", "bob@x.com", "pw123456")
	janeToken := env.token(t, "jane@x.com", "pw123456")

	jane, err := env.users.GetByEmail(context.Background(), "jane@x.com")
	require.NoError(t, err)
	bob, err := env.users.GetByEmail(context.Background(), "bob@x.com")
	require.NoError(t, err)

	// get own record
	resp, body := env.request(t, "GET", "/api/auth/users/"+jane.ID, janeToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "jane@x.com", body["email"])

	// malformed id
	resp, _ = env.request(t, "GET", "/api/auth/users/oops", janeToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// update own name
	resp, body = env.request(t, "PUT", "/api/auth/users/"+jane.ID, janeToken, map[string]string{
		"fullName": "Jane Updated",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Jane Updated", body["fullName"])

	// touching another account is forbidden for non-admins
	resp, _ = env.request(t, "PUT", "/api/auth/users/"+bob.ID, janeToken, map[string]string{
		"fullName": "Hacked",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.request(t, "DELETE", "/api/auth/users/"+bob.ID, janeToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// deleting own account works
	resp, _ = env.request(t, "DELETE", "/api/auth/users/"+jane.ID, janeToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFormSubmissionFlow(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, body := env.request(t, "POST", "/api/forms/submit", "", map[string]string{
		"firstName": "A", "lastName": "B", "email": "a@b.com", "formType": "quote",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	submissionID, _ := body["submissionId"].(string)
	require.NotEmpty(t, submissionID)

	// reading requires a token
	resp, _ = env.request(t, "GET", "/api/forms/submissions/"+submissionID, "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	env.signup(t, "Reader", "reader@x.com", "pw123456")
	token := env.token(t, "reader@x.com", "pw123456")

	resp, body = env.request(t, "GET", "/api/forms/submissions/"+submissionID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "A B", body["name"])
	require.Equal(t, "quote", body["formType"])

	// list carries a count and the envelope
	resp, body = env.request(t, "GET", "/api/forms/submissions", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
	require.Equal(t, float64(1), body["count"])

	// validation failures
	resp, _ = env.request(t, "POST", "/api/forms/submit", "", map[string]string{"email": "a@b.com"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = env.request(t, "POST", "/api/forms/submit", "", map[string]string{"name": "A"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, body := env.request(t, "GET", "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "WARNING", body["status"])
	require.Equal(t, "disconnected", body["database"])
	require.Equal(t, "development", body["environment"])
	require.NotEmpty(t, body["timestamp"])
}

func TestAPIGuardedWhenDatabaseUnavailable(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	RegisterMiddlewares(app, &config.Config{
		App:  config.AppConfig{Env: "development"},
		HTTP: config.HTTPConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}, zap.NewNop(), observability.NewMetrics())

	env := newTestEnv(t)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("development", &persistence.Postgres{}),
		Auth:           handlers.NewAuthHandler(env.auth),
		Users:          handlers.NewUsersHandler(service.NewUserService(config.Config{}, env.users)),
		Forms:          handlers.NewFormsHandler(service.NewSubmissionService(&memSubmissionRepo{byID: make(map[string]*domain.FormSubmission)}, events.NewInMemoryDispatcher())),
		AuthMiddleware: auth.NewMiddleware(env.auth.TokenManager(), env.users),
		DB:             &persistence.Postgres{},
	})

	req := httptest.NewRequest("POST", "/api/forms/submit", strings.NewReader(`{"name":"A","email":"a@b.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// health stays reachable
	req = httptest.NewRequest("GET", "/health", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

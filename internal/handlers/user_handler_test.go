package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"campus-backend/internal/handlers"
	"campus-backend/internal/repository"
	"campus-backend/internal/routes"
	"campus-backend/internal/storage"
	"campus-backend/model"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}}
}

func (s *fakeUserStore) List(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.User{}
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) Get(ctx context.Context, uid string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[uid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *fakeUserStore) Create(ctx context.Context, user *model.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UID]; ok {
		return false, nil
	}
	user.CreatedAt = time.Now().UTC()
	s.users[user.UID] = *user
	return true, nil
}

func (s *fakeUserStore) Update(ctx context.Context, uid string, name, role, image *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[uid]
	if !ok {
		return repository.ErrNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if role != nil {
		u.Role = *role
	}
	if image != nil {
		u.Image = image
	}
	s.users[uid] = u
	return nil
}

func (s *fakeUserStore) ConsumeVerificationToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for uid, u := range s.users {
		if u.VerificationToken != "" && u.VerificationToken == token {
			u.IsVerified = true
			u.VerificationToken = ""
			s.users[uid] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeMailer struct {
	mu    sync.Mutex
	sends []struct{ to, token string }
}

func (m *fakeMailer) SendVerification(to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, struct{ to, token string }{to, token})
	return nil
}

func newUserApp(t *testing.T, store repository.UserStore, mail *fakeMailer) *fiber.App {
	t.Helper()
	saver, err := storage.NewSaver(t.TempDir(), "/uploads")
	require.NoError(t, err)

	app := fiber.New()
	routes.UserRoutes(app, &handlers.UserHandler{Repo: store, Images: saver, Mail: mail})
	return app
}

func TestCreateUserIssuesVerificationToken(t *testing.T) {
	store := newFakeUserStore()
	mail := &fakeMailer{}
	app := newUserApp(t, store, mail)

	resp, err := app.Test(jsonReq("POST", "/api/users",
		`{"uid":"fb-123","name":"Alice","email":"alice@uni.edu"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	u := store.users["fb-123"]
	require.False(t, u.IsVerified)
	require.NotEmpty(t, u.VerificationToken)
	require.Equal(t, model.DefaultRole, u.Role)

	require.Len(t, mail.sends, 1)
	require.Equal(t, "alice@uni.edu", mail.sends[0].to)
	require.Equal(t, u.VerificationToken, mail.sends[0].token)
}

func TestCreateUserIdempotent(t *testing.T) {
	store := newFakeUserStore()
	mail := &fakeMailer{}
	app := newUserApp(t, store, mail)

	resp, err := app.Test(jsonReq("POST", "/api/users",
		`{"uid":"fb-123","name":"Alice","email":"alice@uni.edu"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonReq("POST", "/api/users",
		`{"uid":"fb-123","name":"Impostor","email":"other@uni.edu"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The existing record is untouched and no second mail goes out.
	require.Equal(t, "Alice", store.users["fb-123"].Name)
	require.Equal(t, "alice@uni.edu", store.users["fb-123"].Email)
	require.Len(t, mail.sends, 1)
}

func TestCreateUserMissingFields(t *testing.T) {
	app := newUserApp(t, newFakeUserStore(), &fakeMailer{})

	for _, body := range []string{
		`{"name":"Alice","email":"alice@uni.edu"}`,
		`{"uid":"fb-123","email":"alice@uni.edu"}`,
		`{"uid":"fb-123","name":"Alice"}`,
	} {
		resp, err := app.Test(jsonReq("POST", "/api/users", body))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestGetUserNotFound(t *testing.T) {
	app := newUserApp(t, newFakeUserStore(), &fakeMailer{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/users/fb-missing", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetUserHidesVerificationToken(t *testing.T) {
	store := newFakeUserStore()
	app := newUserApp(t, store, &fakeMailer{})

	store.users["fb-1"] = model.User{UID: "fb-1", Name: "Bob", Email: "bob@uni.edu",
		Role: "student", VerificationToken: "secret-token-value"}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/users/fb-1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotContains(t, string(body), "secret-token-value")
}

func TestUpdateUserPartial(t *testing.T) {
	store := newFakeUserStore()
	app := newUserApp(t, store, &fakeMailer{})

	img := "/uploads/old.png"
	store.users["fb-1"] = model.User{UID: "fb-1", Name: "Bob", Email: "bob@uni.edu",
		Role: "student", Image: &img}

	resp, err := app.Test(multipartReq(t, "/api/users/fb-1", map[string]string{"name": "Robert"}, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Robert", store.users["fb-1"].Name)
	require.Equal(t, "student", store.users["fb-1"].Role)
	require.Equal(t, &img, store.users["fb-1"].Image)

	resp, err = app.Test(multipartReq(t, "/api/users/fb-1", map[string]string{"role": "instructor"}, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Robert", store.users["fb-1"].Name)
	require.Equal(t, "instructor", store.users["fb-1"].Role)
	require.Equal(t, &img, store.users["fb-1"].Image)
}

func TestUpdateUserImage(t *testing.T) {
	store := newFakeUserStore()
	app := newUserApp(t, store, &fakeMailer{})

	store.users["fb-1"] = model.User{UID: "fb-1", Name: "Bob", Email: "bob@uni.edu", Role: "student"}

	resp, err := app.Test(multipartReq(t, "/api/users/fb-1", nil,
		&filePart{field: "image", name: "avatar.png", mime: "image/png", content: "png-bytes"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NotNil(t, store.users["fb-1"].Image)
	require.Regexp(t, `^/uploads/\d+\.png$`, *store.users["fb-1"].Image)
	require.Equal(t, "Bob", store.users["fb-1"].Name)
}

func TestUpdateUserNotFound(t *testing.T) {
	app := newUserApp(t, newFakeUserStore(), &fakeMailer{})

	resp, err := app.Test(multipartReq(t, "/api/users/fb-missing", map[string]string{"name": "X"}, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestVerifyEmailFlow(t *testing.T) {
	store := newFakeUserStore()
	app := newUserApp(t, store, &fakeMailer{})

	store.users["fb-1"] = model.User{UID: "fb-1", Name: "Bob", Email: "bob@uni.edu",
		Role: "student", VerificationToken: "tok-1"}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/users/verify-email?token=tok-1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, "Email successfully verified!", string(body))

	require.True(t, store.users["fb-1"].IsVerified)
	require.Empty(t, store.users["fb-1"].VerificationToken)

	// The token was consumed; a second visit fails.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/users/verify-email?token=tok-1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestVerifyEmailBadToken(t *testing.T) {
	app := newUserApp(t, newFakeUserStore(), &fakeMailer{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/users/verify-email?token=nope", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/users/verify-email", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListUsers(t *testing.T) {
	store := newFakeUserStore()
	app := newUserApp(t, store, &fakeMailer{})

	store.users["fb-1"] = model.User{UID: "fb-1", Name: "Bob", Email: "bob@uni.edu", Role: "student"}
	store.users["fb-2"] = model.User{UID: "fb-2", Name: "Eve", Email: "eve@uni.edu", Role: "instructor"}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/users/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var users []model.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.Len(t, users, 2)
}

package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/devlearn-go/auth"
)

var errStoreDown = errors.New("connection refused")

// stubStore is an in-memory auth.UserStore for handler tests.
type stubStore struct {
	byID map[int64]*auth.User
	fail error
}

func (s *stubStore) CreateUser(ctx context.Context, user *auth.User) error {
	return errors.New("not used in these tests")
}

func (s *stubStore) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	user, ok := s.byID[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	copied := *user
	copied.HashedPassword = ""
	return &copied, nil
}

func (s *stubStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return nil, auth.ErrNotFound
}

func (s *stubStore) UpdateProfile(ctx context.Context, id int64, name, bio, picture string) error {
	if s.fail != nil {
		return s.fail
	}
	user, ok := s.byID[id]
	if !ok {
		return auth.ErrNotFound
	}
	user.Name, user.Bio, user.Picture = name, bio, picture
	return nil
}

func newTestHandlers(store *stubStore) *UserHandlers {
	return NewUserHandlers(NewUserService(store))
}

func authedRequest(method, path, body string, user *auth.User) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if user != nil {
		req = req.WithContext(auth.WithUser(req.Context(), user))
	}
	return req
}

func TestHandleCurrentUser_Unauthenticated(t *testing.T) {
	handlers := newTestHandlers(&stubStore{byID: map[int64]*auth.User{}})

	rec := httptest.NewRecorder()
	handlers.HandleCurrentUser().ServeHTTP(rec, authedRequest(http.MethodGet, "/api/current-user", "", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleCurrentUser_DeletedAccount(t *testing.T) {
	// A valid session for an account deleted since login is a 404.
	handlers := newTestHandlers(&stubStore{byID: map[int64]*auth.User{}})
	ghost := &auth.User{ID: 9}

	rec := httptest.NewRecorder()
	handlers.HandleCurrentUser().ServeHTTP(rec, authedRequest(http.MethodGet, "/api/current-user", "", ghost))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCurrentUser_Success(t *testing.T) {
	alice := &auth.User{
		ID: 1, Email: "alice@example.com", Name: "Alice",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		Roles:          []auth.Role{auth.RoleSubscriber},
	}
	handlers := newTestHandlers(&stubStore{byID: map[int64]*auth.User{1: alice}})

	rec := httptest.NewRecorder()
	handlers.HandleCurrentUser().ServeHTTP(rec, authedRequest(http.MethodGet, "/api/current-user", "", alice))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UserResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Empty(t, resp.User.HashedPassword)
}

func TestHandleUpdateProfile(t *testing.T) {
	alice := &auth.User{ID: 1, Email: "alice@example.com", Name: "Alice"}
	store := &stubStore{byID: map[int64]*auth.User{1: alice}}
	handlers := newTestHandlers(store)

	rec := httptest.NewRecorder()
	handlers.HandleUpdateProfile().ServeHTTP(rec, authedRequest(http.MethodPut, "/api/current-user/update",
		`{"name":"Alice B","bio":"Go instructor","picture":"avatar.png"}`, alice))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, "Alice B", store.byID[1].Name)
	assert.Equal(t, "Go instructor", store.byID[1].Bio)
	assert.Equal(t, "avatar.png", store.byID[1].Picture)
}

func TestHandleUpdateProfile_NameRequired(t *testing.T) {
	alice := &auth.User{ID: 1}
	handlers := newTestHandlers(&stubStore{byID: map[int64]*auth.User{1: alice}})

	rec := httptest.NewRecorder()
	handlers.HandleUpdateProfile().ServeHTTP(rec, authedRequest(http.MethodPut, "/api/current-user/update",
		`{"bio":"no name"}`, alice))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUpdateProfile_Unauthenticated(t *testing.T) {
	handlers := newTestHandlers(&stubStore{byID: map[int64]*auth.User{}})

	rec := httptest.NewRecorder()
	handlers.HandleUpdateProfile().ServeHTTP(rec, authedRequest(http.MethodPut, "/api/current-user/update",
		`{"name":"X"}`, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// detailsRouter mounts the public lookup behind a chi route so the {id}
// parameter resolves.
func detailsRouter(handlers *UserHandlers) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/user/{id}", handlers.HandleGetUserDetails())
	return r
}

func TestHandleGetUserDetails(t *testing.T) {
	alice := &auth.User{ID: 1, Email: "alice@example.com", Name: "Alice"}
	router := detailsRouter(newTestHandlers(&stubStore{byID: map[int64]*auth.User{1: alice}}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UserResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(1), resp.User.ID)
}

func TestHandleGetUserDetails_NotFound(t *testing.T) {
	router := detailsRouter(newTestHandlers(&stubStore{byID: map[int64]*auth.User{}}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetUserDetails_BadID(t *testing.T) {
	router := detailsRouter(newTestHandlers(&stubStore{byID: map[int64]*auth.User{}}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCurrentUser_StoreFault(t *testing.T) {
	handlers := newTestHandlers(&stubStore{fail: errStoreDown})

	rec := httptest.NewRecorder()
	handlers.HandleCurrentUser().ServeHTTP(rec, authedRequest(http.MethodGet, "/api/current-user", "", &auth.User{ID: 1}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

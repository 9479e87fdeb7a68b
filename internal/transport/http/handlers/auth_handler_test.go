package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nikmarin/jobboard/internal/domain"
	"github.com/nikmarin/jobboard/internal/repository"
	"github.com/nikmarin/jobboard/internal/service"
	"github.com/nikmarin/jobboard/internal/token"
	"github.com/nikmarin/jobboard/internal/transport/http/middleware"
)

// memUserRepo implements the subset of repository.UserRepository the
// auth endpoints touch.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }

func (r *memUserRepo) SetRefreshToken(ctx context.Context, id uuid.UUID, tok string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.RefreshToken = tok
	}
	return nil
}

func (r *memUserRepo) AddFavorite(ctx context.Context, userID, jobID uuid.UUID) error    { return nil }
func (r *memUserRepo) RemoveFavorite(ctx context.Context, userID, jobID uuid.UUID) error { return nil }
func (r *memUserRepo) IsFavorite(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	return false, nil
}
func (r *memUserRepo) CountFavorites(ctx context.Context, jobID uuid.UUID) (int, error) {
	return 0, nil
}
func (r *memUserRepo) Follow(ctx context.Context, userID, targetID uuid.UUID) error   { return nil }
func (r *memUserRepo) Unfollow(ctx context.Context, userID, targetID uuid.UUID) error { return nil }
func (r *memUserRepo) IsFollowing(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	return false, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tokens, err := token.NewIssuer(token.Config{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     15 * time.Minute,
	})
	require.NoError(t, err)

	repo := newMemUserRepo()
	authService := service.NewAuthService(repo, tokens)
	userService := service.NewUserService(repo)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(authService, userService)

	auth := middleware.Auth(tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users", authHandler.Register)
	mux.HandleFunc("POST /api/users/login", authHandler.Login)
	mux.HandleFunc("POST /api/users/refresh", authHandler.Refresh)
	mux.Handle("POST /api/users/logout", auth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/user", auth(http.HandlerFunc(userHandler.Current)))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

const registerAlice = `{"user":{"username":"alice","email":"alice@x.com","password":"Sup3rSecret"}}`

func TestRegisterThenCurrentUser(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/users", registerAlice)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		User struct {
			Username     string `json:"username"`
			Email        string `json:"email"`
			Token        string `json:"token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.Equal(t, "alice", created.User.Username)
	require.NotEmpty(t, created.User.Token)
	require.NotEmpty(t, created.User.RefreshToken)

	// The current-user projection carries no tokens.
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/user", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+created.User.Token)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var current struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&current))
	require.Equal(t, "alice", current.User["username"])
	require.Equal(t, "alice@x.com", current.User["email"])
	require.NotContains(t, current.User, "token")
	require.NotContains(t, current.User, "refresh_token")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/users", registerAlice)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/users", `{"user":{"username":"alice","email":"other@x.com","password":"Sup3rSecret"}}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "USERNAME_TAKEN", body.Error.Code)
}

func TestLoginWrongPasswordIsNonSpecific(t *testing.T) {
	srv := newTestServer(t)
	postJSON(t, srv.URL+"/api/users", registerAlice)

	resp := postJSON(t, srv.URL+"/api/users/login", `{"user":{"username":"alice","password":"WrongPass1"}}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// An unknown username yields the identical error code.
	resp = postJSON(t, srv.URL+"/api/users/login", `{"user":{"username":"ghost","password":"WrongPass1"}}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshAndLogout(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/users", registerAlice)
	var created struct {
		User struct {
			Token        string `json:"token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	resp = postJSON(t, srv.URL+"/api/users/refresh", `{"refresh_token":"`+created.User.RefreshToken+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshed struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&refreshed))
	require.NotEmpty(t, refreshed.Token)

	// Logout, then the refresh token is rejected.
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/users/logout", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+created.User.Token)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	resp = postJSON(t, srv.URL+"/api/users/refresh", `{"refresh_token":"`+created.User.RefreshToken+`"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/users", `{"user":{"username":"al","email":"bad","password":"short"}}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	require.Contains(t, body.Error.Fields, "username")
	require.Contains(t, body.Error.Fields, "email")
	require.Contains(t, body.Error.Fields, "password")
}

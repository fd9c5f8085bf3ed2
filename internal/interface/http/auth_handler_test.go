package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"go-blog-api/internal/application"
	"go-blog-api/internal/domain/entity"
	repo "go-blog-api/internal/domain/repository"
	"go-blog-api/pkg/helpers"
	"go-blog-api/pkg/validation"
)

type memUserRepo struct {
	mu     sync.Mutex
	byName map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byName: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[u.Username]; ok {
		return repo.ErrDuplicateUsername
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.byName[u.Username] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byName {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byName[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type apiEnvelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Kind    string            `json:"kind"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func newAuthRouter(t *testing.T) (*gin.Engine, *helpers.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	jwtm := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}
	svc := application.NewAuthService(newMemUserRepo(), jwtm, quietLogger())
	h := NewAuthHandler(svc, jwtm, quietLogger(), "localhost", false)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout)
	api.GET("/profile", h.Profile)
	return r, jwtm
}

func doJSON(r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.TokenCookie {
			return c
		}
	}
	return nil
}

func TestAuthFlow(t *testing.T) {
	r, _ := newAuthRouter(t)

	// register
	w := doJSON(r, http.MethodPost, "/api/register", `{"username":"alice","password":"pw123456"}`)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var created struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "alice", created.Username)
	require.NotContains(t, w.Body.String(), "password", "credential material must never be in the response")

	// login
	w = doJSON(r, http.MethodPost, "/api/login", `{"username":"alice","password":"pw123456"}`)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := tokenCookie(w)
	require.NotNil(t, cookie, "login must set the token cookie")
	require.True(t, cookie.HttpOnly)
	require.NotEmpty(t, cookie.Value)

	var logged struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &logged))
	require.Equal(t, created.ID, logged.ID)

	// profile with the cookie
	w = doJSON(r, http.MethodGet, "/api/profile", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var claim struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &claim))
	require.Equal(t, created.ID, claim.ID, "token must carry the created user's id")
	require.Equal(t, "alice", claim.Username)

	// logout clears the cookie
	w = doJSON(r, http.MethodPost, "/api/logout", "")
	require.Equal(t, http.StatusOK, w.Code)
	cleared := tokenCookie(w)
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)

	// a replayed token still verifies: logout does not revoke
	w = doJSON(r, http.MethodGet, "/api/profile", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &claim))
	require.Equal(t, "alice", claim.Username)
}

func TestLogin_BadCredentials(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := doJSON(r, http.MethodPost, "/api/register", `{"username":"bob","password":"rightpw1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// wrong password and unknown user produce the same body
	w = doJSON(r, http.MethodPost, "/api/login", `{"username":"bob","password":"wrongpw1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	require.Equal(t, "auth", env.Error.Kind)
	require.Equal(t, "username or password is incorrect", env.Error.Message)

	w = doJSON(r, http.MethodPost, "/api/login", `{"username":"nobody","password":"whatever1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	env = decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	require.Equal(t, "username or password is incorrect", env.Error.Message)
}

func TestRegister_Validation(t *testing.T) {
	r, _ := newAuthRouter(t)

	// too-short password
	w := doJSON(r, http.MethodPost, "/api/register", `{"username":"carol","password":"pw"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	require.Equal(t, "validation", env.Error.Kind)
	require.Contains(t, env.Error.Details, "password")

	// duplicate username
	w = doJSON(r, http.MethodPost, "/api/register", `{"username":"carol","password":"pw123456"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/api/register", `{"username":"carol","password":"pw123456"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	env = decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	require.Equal(t, "username already taken", env.Error.Message)
}

func TestProfile_NoCookieIsNull(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := doJSON(r, http.MethodGet, "/api/profile", "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, "null", strings.TrimSpace(string(env.Data)))
}

func TestProfile_BadTokenIs401(t *testing.T) {
	r, jwtm := newAuthRouter(t)

	w := doJSON(r, http.MethodGet, "/api/profile", "",
		&http.Cookie{Name: helpers.TokenCookie, Value: "not.a.jwt"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	require.Equal(t, "auth", env.Error.Kind)

	expired := &helpers.JWTManager{Secret: jwtm.Secret, TTL: -time.Minute}
	tok, _, err := expired.Issue("uid", "alice")
	require.NoError(t, err)
	w = doJSON(r, http.MethodGet, "/api/profile", "",
		&http.Cookie{Name: helpers.TokenCookie, Value: tok})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	env = decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	require.Equal(t, "token expired", env.Error.Message)
}

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/secure-notes/internal/config"
	"github.com/iliyamo/secure-notes/internal/model"
	"github.com/iliyamo/secure-notes/internal/repository"
	"github.com/iliyamo/secure-notes/internal/utils"
)

// fakeUserStore implements UserStore in memory with the same
// uniqueness behavior as the MySQL repository.
type fakeUserStore struct {
	nextID uint64
	byName map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byName: map[string]model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, username, password string, cost int) (uint64, error) {
	if _, ok := s.byName[username]; ok {
		return 0, repository.ErrUsernameExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	s.byName[username] = model.User{ID: s.nextID, Username: username, PasswordHash: hash}
	return s.nextID, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := s.byName[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *fakeUserStore) ListUsernames(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(s.byName))
	for n := range s.byName {
		names = append(names, n)
	}
	return names, nil
}

func testCfg() config.Config {
	return config.Config{
		SecretKey:    "handler-test-secret",
		AccessTTLMin: 30,
		BcryptCost:   4, // bcrypt.MinCost, keeps the tests fast
	}
}

func postJSON(e *echo.Echo, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	return rec
}

func TestRegister_ThenDuplicate(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(testCfg(), newFakeUserStore())

	rec := postJSON(e, h.Register, `{"username":"alice","password":"p1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User userPart `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotZero(t, resp.User.ID)

	// Same username again, different password: still taken.
	rec = postJSON(e, h.Register, `{"username":"alice","password":"p2"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(testCfg(), newFakeUserStore())

	for _, body := range []string{
		`{"username":"","password":"p"}`,
		`{"username":"alice","password":""}`,
		`not json`,
	} {
		rec := postJSON(e, h.Register, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestLogin_Flow(t *testing.T) {
	e := echo.New()
	store := newFakeUserStore()
	h := NewAuthHandler(testCfg(), store)

	rec := postJSON(e, h.Register, `{"username":"alice","password":"p1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Wrong password.
	rec = postJSON(e, h.Login, `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	wrongPwd := rec.Body.String()

	// Unknown username: byte-identical response, no account enumeration.
	rec = postJSON(e, h.Login, `{"username":"nobody","password":"p1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, wrongPwd, rec.Body.String())

	// Correct credentials yield a token that resolves back to alice.
	rec = postJSON(e, h.Login, `{"username":"alice","password":"p1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	uid, err := utils.ParseAccessToken(testCfg().SecretKey, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, store.byName["alice"].ID, uid)
}

func TestLogin_UsernameNormalized(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(testCfg(), newFakeUserStore())

	rec := postJSON(e, h.Register, `{"username":"Alice","password":"p1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(e, h.Login, `{"username":"  ALICE  ","password":"p1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListUsers(t *testing.T) {
	e := echo.New()
	store := newFakeUserStore()
	h := NewAuthHandler(testCfg(), store)

	postJSON(e, h.Register, `{"username":"alice","password":"p1"}`)
	postJSON(e, h.Register, `{"username":"bob","password":"p2"}`)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListUsers(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Users []string `json:"users"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []string{"alice", "bob"}, resp.Users)
	assert.NotContains(t, rec.Body.String(), "password")
}

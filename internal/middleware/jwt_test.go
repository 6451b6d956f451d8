package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/secure-notes/internal/model"
	"github.com/iliyamo/secure-notes/internal/utils"
)

const testSecret = "middleware-test-secret"

type fakeUserSource struct {
	users map[uint64]model.User
}

func (f *fakeUserSource) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

// runProtected sends a request through JWTAuth into a handler that
// echoes the resolved identity, and returns the recorder.
func runProtected(t *testing.T, users UserSource, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := JWTAuth(testSecret, users)(func(c echo.Context) error {
		u, ok := CurrentUser(c)
		require.True(t, ok, "handler ran without an identity in context")
		return c.String(http.StatusOK, u.Username)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/notes", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h(c))
	return rec
}

func TestJWTAuth_ValidToken(t *testing.T) {
	users := &fakeUserSource{users: map[uint64]model.User{7: {ID: 7, Username: "alice"}}}
	tok, err := utils.NewAccessToken(testSecret, 7, "alice", 30)
	require.NoError(t, err)

	rec := runProtected(t, users, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestJWTAuth_UniformRejection(t *testing.T) {
	users := &fakeUserSource{users: map[uint64]model.User{7: {ID: 7, Username: "alice"}}}

	valid, err := utils.NewAccessToken(testSecret, 7, "alice", 30)
	require.NoError(t, err)
	expired, err := utils.NewAccessToken(testSecret, 7, "alice", -1)
	require.NoError(t, err)
	foreign, err := utils.NewAccessToken("some-other-secret", 7, "alice", 30)
	require.NoError(t, err)
	orphan, err := utils.NewAccessToken(testSecret, 99, "ghost", 30)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + valid.Token},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expired.Token},
		{"wrong signature", "Bearer " + foreign.Token},
		{"subject deleted", "Bearer " + orphan.Token},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runProtected(t, users, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}

	// Every rejection reads the same; the response never says why.
	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
}

func TestCurrentUser_AbsentWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := CurrentUser(c)
	assert.False(t, ok)
}

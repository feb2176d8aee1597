package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"slotswap/cmd/internal/domain/entity"
	"slotswap/cmd/internal/routes"
	"slotswap/cmd/internal/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[int]*entity.User
}

func (f *fakeUserRepo) FindByID(id int) (*entity.User, error) {
	return f.users[id], nil
}

func callWithAuth(t *testing.T, header string, repo routes.AuthUserRepository) (*httptest.ResponseRecorder, *utils.TokenData) {
	t.Helper()

	var seen *utils.TokenData
	handler := func(c echo.Context) error {
		data, err := utils.ParseTokenDataCtx(c)
		require.NoError(t, err)
		seen = data
		return c.NoContent(http.StatusOK)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := routes.RequireAuth("secret", repo)(handler)(c)
	require.NoError(t, err)
	return rec, seen
}

func TestRequireAuth(t *testing.T) {
	repo := &fakeUserRepo{users: map[int]*entity.User{
		7: {ID: 7, Name: "alice", Email: "alice@example.com"},
	}}

	token, err := utils.SignToken("secret", 7)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		rec, seen := callWithAuth(t, "Bearer "+token, repo)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, 7, seen.UserID)
	})

	t.Run("missing header", func(t *testing.T) {
		rec, _ := callWithAuth(t, "", repo)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		rec, _ := callWithAuth(t, "Basic abc", repo)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("forged token", func(t *testing.T) {
		forged, err := utils.SignToken("wrong-secret", 7)
		require.NoError(t, err)
		rec, _ := callWithAuth(t, "Bearer "+forged, repo)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for deleted user", func(t *testing.T) {
		orphan, err := utils.SignToken("secret", 404)
		require.NoError(t, err)
		rec, _ := callWithAuth(t, "Bearer "+orphan, repo)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"slotswap/cmd/internal/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	raw, err := utils.SignToken("secret", 42)
	require.NoError(t, err)

	data, err := utils.ParseToken("secret", raw)
	require.NoError(t, err)
	assert.Equal(t, 42, data.UserID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	raw, err := utils.SignToken("secret", 42)
	require.NoError(t, err)

	_, err = utils.ParseToken("other-secret", raw)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := utils.ParseToken("secret", "not-a-token")
	assert.Error(t, err)
}

func TestParseTokenDataCtx(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, err := utils.ParseTokenDataCtx(c)
	assert.ErrorIs(t, err, utils.ErrNoTokenData)

	c.Set(utils.TokenDataKey, &utils.TokenData{UserID: 7})
	data, err := utils.ParseTokenDataCtx(c)
	require.NoError(t, err)
	assert.Equal(t, 7, data.UserID)
}

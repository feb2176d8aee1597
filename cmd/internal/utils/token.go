package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// TokenDataKey is where the auth middleware stores the parsed token
// data on the echo context.
const TokenDataKey = "token_data"

var ErrNoTokenData = errors.New("no token data in context")

type TokenData struct {
	UserID int
}

type tokenClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

func SignToken(secret string, userID int) (string, error) {
	claims := &tokenClaims{UserID: userID}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, raw string) (*TokenData, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return &TokenData{UserID: claims.UserID}, nil
}

func ParseTokenDataCtx(c echo.Context) (*TokenData, error) {
	data, ok := c.Get(TokenDataKey).(*TokenData)
	if !ok || data == nil {
		return nil, ErrNoTokenData
	}
	return data, nil
}

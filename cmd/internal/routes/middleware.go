package routes

import (
	"slotswap/cmd/internal/domain/entity"
	"slotswap/cmd/internal/utils"
	"slotswap/cmd/internal/utils/apierror"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type AuthUserRepository interface {
	FindByID(id int) (*entity.User, error)
}

// RequireAuth resolves the Bearer token to a user id before any
// protected handler runs. The user row is re-read on every request so
// a token minted for a deleted account stops working immediately.
func RequireAuth(secret string, users AuthUserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(apierror.MissingAuthError.Code(), apierror.MissingAuthError)
			}

			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			data, err := utils.ParseToken(secret, raw)
			if err != nil {
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			user, err := users.FindByID(data.UserID)
			if err != nil {
				log.Errorf("failed to fetch user %d during auth: %v", data.UserID, err)
				return c.JSON(apierror.InternalServerError.Code(), apierror.InternalServerError)
			}
			if user == nil {
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			c.Set(utils.TokenDataKey, data)
			return next(c)
		}
	}
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ytakahashi/todo-backend/internal/auth"
)

const userIDKey = "userId"

// Authorizer is implemented by *auth.Authorizer.
type Authorizer interface {
	Authorize(header string) auth.Response
}

// RequireAuth rejects requests whose Authorization header is denied and
// stores the principal of allowed ones in the context.
func RequireAuth(a Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			resp := a.Authorize(c.Request().Header.Get(echo.HeaderAuthorization))
			if !resp.Allowed() {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			c.Set(userIDKey, resp.PrincipalID)
			return next(c)
		}
	}
}

// AuthorizeHandler exposes the raw policy decision to an upstream router.
func AuthorizeHandler(a Authorizer) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, a.Authorize(c.Request().Header.Get(echo.HeaderAuthorization)))
	}
}

func getUserID(c echo.Context) string {
	userID, _ := c.Get(userIDKey).(string)
	return userID
}

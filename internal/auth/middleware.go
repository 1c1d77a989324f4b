package auth

import (
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"todoapp/internal/errors"
)

// userContextKey is where the middleware stores the resolved user identifier.
const userContextKey = "authUserID"

// Middleware returns the identity gate for protected routes. It reads the
// bearer token from the Authorization header, verifies it through the
// token service, and injects the resolved user identifier into the request
// context. Missing, malformed, and expired tokens all answer 401.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: userContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			userID, err := jwtService.Verify(auth)
			if err != nil {
				return nil, err
			}
			return userID, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "authorization required",
				Code:  "UNAUTHENTICATED",
			})
		},
	})
}

// UserID returns the identifier the gate resolved for this request.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(userContextKey).(uuid.UUID)
	return id, ok
}

// SetUserID injects an identity into the context the way the middleware
// does. Intended for handler tests.
func SetUserID(c echo.Context, id uuid.UUID) {
	c.Set(userContextKey, id)
}

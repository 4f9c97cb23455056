package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/zanta/lfp-client/internal/core/domain"
)

const tokenTTL = 24 * time.Hour

// issueToken signs an HS256 token carrying the user's identity.
func issueToken(secret []byte, user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// parseBearer validates the Authorization header and returns the claims.
func parseBearer(secret []byte, c echo.Context) (jwt.MapClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

// auth requires a valid token and injects uid/role into the echo context.
func auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseBearer(secret, c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			setIdentity(c, claims)
			return next(c)
		}
	}
}

// optionalAuth injects the identity when a valid token is present but lets
// anonymous callers through; list endpoints use it to compute hasJoined.
func optionalAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") != "" {
				if claims, err := parseBearer(secret, c); err == nil {
					setIdentity(c, claims)
				}
			}
			return next(c)
		}
	}
}

// adminOnly rejects callers whose token does not carry the ADMIN role.
func adminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role != domain.RoleAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

func setIdentity(c echo.Context, claims jwt.MapClaims) {
	if uid, ok := claims["uid"].(float64); ok {
		c.Set("uid", int64(uid))
	}
	c.Set("username", claims["username"])
	c.Set("role", claims["role"])
}

// callerID returns the authenticated user's ID, or 0 for anonymous callers.
func callerID(c echo.Context) int64 {
	uid, _ := c.Get("uid").(int64)
	return uid
}

package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Identity is the verified token subject attached to the request context.
type Identity struct {
	UserID int64
	Role   string
}

// FromToken pulls the identity out of the echo-jwt token in context.
func FromToken(c echo.Context) (Identity, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return Identity{}, errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid jwt claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return Identity{}, errors.New("sub missing in claims")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return Identity{}, errors.New("role missing in claims")
	}
	return Identity{UserID: int64(sub), Role: role}, nil
}

// UserID reads the id set by the identity middleware.
func UserID(c echo.Context) int64 {
	id, _ := c.Get("user_id").(int64)
	return id
}

// Role reads the role set by the identity middleware.
func Role(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

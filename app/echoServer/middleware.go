package echoServer

import (
	"log/slog"
	"net/http"
	"time"

	"fieldrental/app/echoServer/jwtx"
	"fieldrental/model"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return err
		}
	}
}

// Identity copies the verified claims into user_id / role context keys.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := jwtx.FromToken(c)
			if err != nil {
				rid := c.Response().Header().Get(echo.HeaderXRequestID)
				slog.Warn("identity extraction failed", "req_id", rid, "err", err)
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
			}
			c.Set("user_id", id.UserID)
			c.Set("role", id.Role)
			return next(c)
		}
	}
}

// AdminOnly rejects requests whose token role is not ADMIN.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if jwtx.Role(c) != string(model.RoleAdmin) {
				return c.JSON(http.StatusForbidden, echo.Map{
					"status":  "error",
					"message": "Forbidden",
				})
			}
			return next(c)
		}
	}
}

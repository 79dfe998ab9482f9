package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fieldrental/app/echoServer/jwtx"
	"fieldrental/app/echoServer/validation"
	"fieldrental/model"
	authsvc "fieldrental/service/auth"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger

	// SecureCookie marks the session cookie Secure (production only).
	SecureCookie bool
}

// Register a new user
// @Summary      Register user
// @Description  Register a USER account, email must be unused
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any "validation error or email taken"
// @Failure      500  {object}  map[string]any
// @Router       /api/user/register [post]
func (ct *Controller) Register(c echo.Context) error {
	u, err := ct.register(c, model.RoleUser)
	if err != nil {
		return err
	}
	if u == nil {
		return nil // response already written
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "success",
		"message": "Register Successful",
		"data":    publicUser(u),
	})
}

// CreateAdmin registers an ADMIN account
// @Summary      Create admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /api/admin/create [post]
func (ct *Controller) CreateAdmin(c echo.Context) error {
	u, err := ct.register(c, model.RoleAdmin)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "success",
		"message": "Register Admin Successful",
		"data":    publicUser(u),
	})
}

// register binds, validates and creates an account. A nil, nil return
// means the error response has already been written.
func (ct *Controller) register(c echo.Context, role model.Role) (*model.User, error) {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return nil, c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"message": "invalid body",
		})
	}
	if err := ct.V.Struct(req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{
			"code":    400,
			"success": false,
			"message": validation.Fields(err),
		})
	}

	var (
		u   *model.User
		err error
	)
	if role == model.RoleAdmin {
		u, err = ct.Svc.RegisterAdmin(c.Request().Context(), req)
	} else {
		u, err = ct.Svc.Register(c.Request().Context(), req)
	}
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrEmailTaken):
			return nil, c.JSON(http.StatusBadRequest, echo.Map{
				"status":  "error",
				"message": "Email already registered",
			})
		case errors.Is(err, authsvc.ErrBadInput):
			return nil, c.JSON(http.StatusBadRequest, echo.Map{
				"status":  "error",
				"message": "bad input",
			})
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("register failed", "err", err, "req_id", rid, "path", c.Path())
			return nil, c.JSON(http.StatusInternalServerError, echo.Map{
				"status":  "error",
				"message": "Failed to Register User",
			})
		}
	}
	return u, nil
}

// Login
// @Summary      Login
// @Description  Login with email and password, sets the token cookie
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /api/user/login [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"message": "invalid body",
		})
	}
	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"code":    400,
			"success": false,
			"message": validation.Fields(err),
		})
	}

	u, token, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrUserNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status":  "error",
				"message": "User not found",
			})
		case errors.Is(err, authsvc.ErrWrongPassword):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status":  "error",
				"message": "Wrong Password",
			})
		case errors.Is(err, authsvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status":  "error",
				"message": "bad input",
			})
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("login failed", "err", err, "req_id", rid, "path", c.Path())
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status":  "error",
				"message": "Failed to Login User",
			})
		}
	}

	c.SetCookie(ct.sessionCookie(token, int(authsvc.TokenTTL.Seconds())))

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "success",
		"message": "Login Successful",
		"data": echo.Map{
			"id":    u.ID,
			"name":  u.Name,
			"email": u.Email,
			"role":  u.Role,
			"token": token,
		},
	})
}

// Me returns the caller's profile
// @Summary      Own profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /api/me [get]
func (ct *Controller) Me(c echo.Context) error {
	uid := jwtx.UserID(c)
	u, err := ct.Svc.Me(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, authsvc.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status":  "error",
				"message": "User not found",
			})
		}
		ct.Log.Error("me failed", "err", err, "user_id", uid)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  "error",
			"message": "Failed to fetch profile",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": publicUser(u)})
}

// Logout clears the session cookie
// @Summary      Logout
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/user/logout [post]
func (ct *Controller) Logout(c echo.Context) error {
	cookie := ct.sessionCookie("", -1)
	cookie.Expires = time.Unix(0, 0)
	c.SetCookie(cookie)
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Logout successful",
	})
}

// ListAdmins
// @Summary      List admin accounts
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/admin [get]
func (ct *Controller) ListAdmins(c echo.Context) error {
	admins, err := ct.Svc.ListAdmins(c.Request().Context())
	if err != nil {
		ct.Log.Error("list admins failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  "error",
			"message": "Failed to list admins",
		})
	}
	out := make([]echo.Map, 0, len(admins))
	for i := range admins {
		out = append(out, publicUser(&admins[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Get All Admins",
		"data":    out,
	})
}

func (ct *Controller) sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   ct.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func publicUser(u *model.User) echo.Map {
	return echo.Map{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"role":       u.Role,
		"created_at": u.CreatedAt,
	}
}

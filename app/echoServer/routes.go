package echoServer

import (
	"net/http"

	authctrl "fieldrental/app/echoServer/controller/auth"
	bookingctrl "fieldrental/app/echoServer/controller/booking"
	fieldctrl "fieldrental/app/echoServer/controller/field"
	timeslotctrl "fieldrental/app/echoServer/controller/timeslot"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth     *authctrl.Controller
	Field    *fieldctrl.Controller
	Timeslot *timeslotctrl.Controller
	Booking  *bookingctrl.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// The session token travels in the httpOnly "token" cookie.
	jwtmw := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(c.JWTSecret),
		TokenLookup: "cookie:token",
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
		},
	})

	// Public
	pub := e.Group("/api")
	pub.POST("/user/register", c.Auth.Register)
	pub.POST("/user/login", c.Auth.Login)

	// Authenticated users
	user := e.Group("/api", jwtmw, Identity())
	user.GET("/me", c.Auth.Me)
	user.POST("/user/logout", c.Auth.Logout)

	user.POST("/booking", c.Booking.Create)
	user.GET("/booking/my", c.Booking.My)
	user.DELETE("/booking/:id", c.Booking.Cancel)

	// Admin
	admin := e.Group("/api", jwtmw, Identity(), AdminOnly())
	admin.POST("/admin/create", c.Auth.CreateAdmin)
	admin.GET("/admin", c.Auth.ListAdmins)

	admin.POST("/field", c.Field.Create)
	admin.GET("/field", c.Field.List)
	admin.PUT("/field/:id", c.Field.Update)
	admin.DELETE("/field/:id", c.Field.Delete)

	admin.POST("/timeslot/:fieldId", c.Timeslot.CreateSlots)
	admin.GET("/timeslot/:fieldId", c.Timeslot.FieldSlots)

	admin.GET("/booking", c.Booking.ListAll)
	admin.POST("/booking/:id/approve", c.Booking.Approve)
	admin.POST("/booking/:id/reject", c.Booking.Reject)
}

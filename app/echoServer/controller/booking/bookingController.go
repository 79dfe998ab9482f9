package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"fieldrental/app/echoServer/jwtx"
	"fieldrental/app/echoServer/validation"
	bookingsvc "fieldrental/service/booking"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create
// @Summary      Create booking
// @Description  Books a time slot for the caller, status starts PENDING
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateBookingReq  true  "Booking payload"
// @Success      201  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any "slot already booked"
// @Router       /api/booking [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"code":    400,
			"success": false,
			"message": validation.Fields(err),
		})
	}
	uid := jwtx.UserID(c)

	b, err := h.Svc.Create(c.Request().Context(), uid, req.FieldID, req.SlotID)
	if err != nil {
		return h.fail(c, err, "Failed to booking field")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "success",
		"message": "Booking created successfully",
		"data":    b,
	})
}

// ListAll
// @Summary      List all bookings (admin)
// @Tags         bookings
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/booking [get]
func (h *Controller) ListAll(c echo.Context) error {
	rows, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		h.Log.Error("booking list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": "Failed to get All Booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Get All Booking User",
		"data":    rows,
	})
}

// My
// @Summary      List own bookings
// @Tags         bookings
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/booking/my [get]
func (h *Controller) My(c echo.Context) error {
	uid := jwtx.UserID(c)
	rows, err := h.Svc.MyBookings(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("booking my", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": "Failed to get bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "success", "data": rows})
}

// Approve
// @Summary      Approve booking (admin)
// @Tags         bookings
// @Produce      json
// @Param        id  path  int  true  "Booking id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/booking/{id}/approve [post]
func (h *Controller) Approve(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return nil
	}
	b, err := h.Svc.Approve(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "Failed to approve booking")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Booking approve successfully",
		"data":    b,
	})
}

// Reject
// @Summary      Reject booking (admin)
// @Tags         bookings
// @Produce      json
// @Param        id  path  int  true  "Booking id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/booking/{id}/reject [post]
func (h *Controller) Reject(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return nil
	}
	b, err := h.Svc.Reject(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "Failed to cancel booking")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Cancel booking successfully",
		"data":    b,
	})
}

// Cancel
// @Summary      Cancel own booking
// @Tags         bookings
// @Produce      json
// @Param        id  path  int  true  "Booking id"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any "confirmed or already cancelled"
// @Failure      403  {object}  map[string]any "not the owner"
// @Router       /api/booking/{id} [delete]
func (h *Controller) Cancel(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return nil
	}
	uid := jwtx.UserID(c)

	b, err := h.Svc.Cancel(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, err, "Failed to cancel booking")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Booking cancelled successfully",
		"data":    b,
	})
}

func bookingID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Controller) fail(c echo.Context, err error, internalMsg string) error {
	switch bookingsvc.Code(err) {
	case bookingsvc.ErrFieldNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": "Field not found"})
	case bookingsvc.ErrSlotNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": "Slot not found"})
	case bookingsvc.ErrSlotTaken:
		return c.JSON(http.StatusConflict, echo.Map{"status": "error", "message": "Slot already booked"})
	case bookingsvc.ErrBookingNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": "Booking not found"})
	case bookingsvc.ErrNotOwner:
		return c.JSON(http.StatusForbidden, echo.Map{"status": "error", "message": "You cannot cancel this booking."})
	case bookingsvc.ErrConfirmed:
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "Confirmed bookings cannot be cancelled."})
	case bookingsvc.ErrAlreadyCancelled:
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "booking has been cancelled."})
	case bookingsvc.ErrAlreadyDecided:
		return c.JSON(http.StatusConflict, echo.Map{"status": "error", "message": "Booking already cancelled"})
	default:
		h.Log.Error("booking op failed", "err", err, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": internalMsg})
	}
}

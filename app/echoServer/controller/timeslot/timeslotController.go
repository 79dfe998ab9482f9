package timeslot

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"fieldrental/app/echoServer/validation"
	timeslotsvc "fieldrental/service/timeslot"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc timeslotsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// CreateSlots
// @Summary      Generate hourly slots
// @Description  Creates one slot per hour in [start_hour, end_hour) for the field on the given date
// @Tags         timeslots
// @Accept       json
// @Produce      json
// @Param        fieldId  path  int             true  "Field id"
// @Param        payload  body  CreateSlotsReq  true  "Slot range"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/timeslot/{fieldId} [post]
func (h *Controller) CreateSlots(c echo.Context) error {
	fieldID, err := strconv.ParseInt(c.Param("fieldId"), 10, 64)
	if err != nil || fieldID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "fieldId must be a number"})
	}

	var req CreateSlotsReq
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

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "date must be YYYY-MM-DD"})
	}

	out, err := h.Svc.CreateSlots(c.Request().Context(), fieldID, date, *req.StartHour, *req.EndHour)
	if err != nil {
		return h.fail(c, err, "Failed to Create Slot")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Slots created and retrieved successfully",
		"data":    out,
	})
}

// FieldSlots
// @Summary      List slots for a field
// @Tags         timeslots
// @Produce      json
// @Param        fieldId  path  int  true  "Field id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/timeslot/{fieldId} [get]
func (h *Controller) FieldSlots(c echo.Context) error {
	fieldID, err := strconv.ParseInt(c.Param("fieldId"), 10, 64)
	if err != nil || fieldID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "fieldId must be a number"})
	}
	out, err := h.Svc.FieldSlots(c.Request().Context(), fieldID)
	if err != nil {
		return h.fail(c, err, "Failed to get Slot")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   out,
	})
}

func (h *Controller) fail(c echo.Context, err error, internalMsg string) error {
	switch timeslotsvc.Code(err) {
	case timeslotsvc.ErrFieldNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": "Field not found"})
	case timeslotsvc.ErrBadRange:
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "startHour must be before endHour"})
	default:
		h.Log.Error("timeslot op failed", "err", err, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": internalMsg})
	}
}

package field

import (
	"log/slog"
	"net/http"
	"strconv"

	"fieldrental/app/echoServer/validation"
	fieldsvc "fieldrental/service/field"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc fieldsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create
// @Summary      Create field
// @Tags         fields
// @Accept       json
// @Produce      json
// @Param        payload  body  UpsertFieldReq  true  "Field payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /api/field [post]
func (h *Controller) Create(c echo.Context) error {
	req, ok := h.bind(c)
	if !ok {
		return nil
	}
	f, err := h.Svc.Create(c.Request().Context(), req.Name, req.Description, *req.Price)
	if err != nil {
		return h.fail(c, err, "Failed to Create Field")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "success",
		"message": "Field created successfully",
		"data":    f,
	})
}

// List
// @Summary      List fields
// @Tags         fields
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/field [get]
func (h *Controller) List(c echo.Context) error {
	fields, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "Failed to get Fields")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Get All Fields",
		"data":    fields,
	})
}

// Update
// @Summary      Update field
// @Tags         fields
// @Accept       json
// @Produce      json
// @Param        id       path  int             true  "Field id"
// @Param        payload  body  UpsertFieldReq  true  "Field payload"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/field/{id} [put]
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid id"})
	}
	req, ok := h.bind(c)
	if !ok {
		return nil
	}
	f, err := h.Svc.Update(c.Request().Context(), id, req.Name, req.Description, *req.Price)
	if err != nil {
		return h.fail(c, err, "Failed to Update Field")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Field updated successfully",
		"data":    f,
	})
}

// Delete
// @Summary      Delete field
// @Tags         fields
// @Produce      json
// @Param        id  path  int  true  "Field id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/field/{id} [delete]
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "Failed to Delete Field")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Field deleted successfully",
	})
}

func (h *Controller) bind(c echo.Context) (*UpsertFieldReq, bool) {
	var req UpsertFieldReq
	if err := c.Bind(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid body"})
		return nil, false
	}
	if err := h.V.Struct(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{
			"code":    400,
			"success": false,
			"message": validation.Fields(err),
		})
		return nil, false
	}
	return &req, true
}

func (h *Controller) fail(c echo.Context, err error, internalMsg string) error {
	switch fieldsvc.Code(err) {
	case fieldsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": "Field not found"})
	case fieldsvc.ErrBadInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "bad input"})
	default:
		h.Log.Error("field op failed", "err", err, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": internalMsg})
	}
}

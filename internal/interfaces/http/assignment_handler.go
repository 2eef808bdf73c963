package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/application/inventory"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

// AssignmentHandler préstamos de seriales a usuarios.
type AssignmentHandler struct {
	uc  *inventory.AssignmentUseCase
	log *logger.Logger
}

// NewAssignmentHandler construye el handler.
func NewAssignmentHandler(uc *inventory.AssignmentUseCase, log *logger.Logger) *AssignmentHandler {
	return &AssignmentHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Asignar un serial en stock a un usuario
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssignmentRequest  true  "Serial, usuario y fechas"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assignments [post]
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssignmentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Assign(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Return godoc
// @Summary      Cerrar una asignación (devolución)
// @Description  Idempotente: cerrar una asignación ya cerrada la devuelve sin cambios.
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la asignación"
// @Success      200  {object}  dto.AssignmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assignments/{id}/return [post]
func (h *AssignmentHandler) Return(c *fiber.Ctx) error {
	out, err := h.uc.CloseAssignment(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener asignación
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la asignación"
// @Success      200  {object}  dto.AssignmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assignments/{id} [get]
func (h *AssignmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar asignaciones
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "Usuario asignado"
// @Param        active   query  bool    false  "Solo activas"
// @Success      200  {array}  dto.AssignmentResponse
// @Router       /api/assignments [get]
func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), repository.AssignmentFilter{
		UserID:     c.Query("user_id"),
		ActiveOnly: c.QueryBool("active", false),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/application/inventory"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

// SerialHandler unidades serializadas.
type SerialHandler struct {
	uc  *inventory.SerialUseCase
	log *logger.Logger
}

// NewSerialHandler construye el handler.
func NewSerialHandler(uc *inventory.SerialUseCase, log *logger.Logger) *SerialHandler {
	return &SerialHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar seriales
// @Tags         serials
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "in_stock | assigned | in_repair | retired"
// @Param        item_id   query  string  false  "Artículo"
// @Param        assigned  query  bool    false  "Con o sin asignatario"
// @Success      200  {array}  dto.SerialResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/serials [get]
func (h *SerialHandler) List(c *fiber.Ctx) error {
	filter := repository.SerialFilter{ItemID: c.Query("item_id")}
	if s := c.Query("status"); s != "" {
		st, ok := entity.ParseSerialStatus(s)
		if !ok {
			return badRequest(c, "VALIDATION", "status desconocido: "+s)
		}
		filter.Status = st
	}
	switch c.Query("assigned") {
	case "":
	case "true":
		v := true
		filter.Assigned = &v
	case "false":
		v := false
		filter.Assigned = &v
	default:
		return badRequest(c, "VALIDATION", "assigned debe ser true o false")
	}
	out, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener serial
// @Tags         serials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del serial"
// @Success      200  {object}  dto.SerialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/serials/{id} [get]
func (h *SerialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar el estado físico de un serial
// @Description  assigned solo se alcanza creando una asignación.
// @Tags         serials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del serial"
// @Param        body  body  dto.UpdateSerialStatusRequest  true  "in_stock | in_repair | retired"
// @Success      200   {object}  dto.SerialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/serials/{id}/status [patch]
func (h *SerialHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateSerialStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.ChangeStatus(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/application/procurement"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

// OrderHandler órdenes de compra, su ciclo de estados y las recepciones.
type OrderHandler struct {
	orders     *procurement.OrderUseCase
	deliveries *procurement.DeliveryUseCase
	log        *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *procurement.OrderUseCase, deliveries *procurement.DeliveryUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, deliveries: deliveries, log: log}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.orders.CreateOrder(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden con proveedor, líneas, recepciones y adjuntos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.orders.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "requested | internal_approval | sent_to_supplier | delivered"
// @Param        supplier_id  query  string  false  "Proveedor"
// @Param        q            query  string  false  "Referencia interna"
// @Success      200  {array}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	filter := repository.OrderFilter{
		SupplierID: c.Query("supplier_id"),
		Search:     c.Query("q"),
	}
	if s := c.Query("status"); s != "" {
		st, ok := entity.ParseOrderStatus(s)
		if !ok {
			return badRequest(c, "VALIDATION", "status desconocido: "+s)
		}
		filter.Status = st
	}
	out, err := h.orders.List(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// NextStatuses godoc
// @Summary      Estados alcanzables desde el estado actual
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  map[string][]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/next-statuses [get]
func (h *OrderHandler) NextStatuses(c *fiber.Ctx) error {
	out, err := h.orders.NextStatuses(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"statuses": out})
}

// UpdateStatus godoc
// @Summary      Cambiar el estado de la orden
// @Description  requested → internal_approval → sent_to_supplier → delivered.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.orders.Transition(c.Context(), GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// RegisterDelivery godoc
// @Summary      Registrar la recepción de una orden
// @Description  Crea la recepción y sus seriales en stock en una sola transacción.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la orden"
// @Param        body  body  dto.RegisterDeliveryRequest  true  "Albarán y números de serie"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/deliveries [post]
func (h *OrderHandler) RegisterDelivery(c *fiber.Ctx) error {
	var in dto.RegisterDeliveryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.deliveries.RegisterDelivery(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

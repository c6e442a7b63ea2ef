package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/batch"
	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/application/usecase"
)

// OrderHandler gestión de pedidos desde el panel.
type OrderHandler struct {
	uc          *usecase.OrderUseCase
	lifecycleUC *batch.LifecycleUseCase
	deleteUC    *usecase.DeleteUseCase
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(uc *usecase.OrderUseCase, lifecycleUC *batch.LifecycleUseCase, deleteUC *usecase.DeleteUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, lifecycleUC: lifecycleUC, deleteUC: deleteUC}
}

// orderQuery lee los filtros de listado de la query string.
func orderQuery(c *fiber.Ctx) dto.OrderListQuery {
	q := dto.OrderListQuery{
		ClubID:      c.Query("club_id"),
		Status:      c.Query("status"),
		BatchKey:    c.Query("batch"),
		Replacement: c.Query("replacement"),
		From:        c.Query("from"),
		To:          c.Query("to"),
	}
	q.Limit = c.QueryInt("limit", dto.DefaultPageLimit)
	q.Offset = c.QueryInt("offset", 0)
	q.DefaultPage()
	return q
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Param        club_id      query  string  false  "Club"
// @Param        status       query  string  false  "Estado"
// @Param        batch        query  string  false  "Lote: 7, ERR-2 o INDIVIDUAL"
// @Param        replacement  query  bool    false  "Solo reposiciones (true) o solo pedidos (false)"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), orderQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar pedido
// @Description  Datos de cliente y notas siempre; líneas solo mientras el pedido está en recopilando.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido
// @Description  Un pedido con reposiciones requiere cascade=true.
// @Tags         orders
// @Produce      json
// @Param        id       path   string  true   "ID del pedido"
// @Param        cascade  query  bool    false  "Borrar también las reposiciones"
// @Success      200  {object}  dto.DeleteResultResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	out, err := h.deleteUC.DeleteOrder(c.UserContext(), c.Params("id"), c.QueryBool("cascade", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.lifecycleUC.CancelOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Advance godoc
// @Summary      Avanzar envío individual
// @Description  Solo pedidos de envío individual; los de lote avanzan con su lote.
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/orders/{id}/advance [post]
func (h *OrderHandler) Advance(c *fiber.Ctx) error {
	out, err := h.lifecycleUC.AdvanceOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Revert godoc
// @Summary      Retroceder envío individual
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/orders/{id}/revert [post]
func (h *OrderHandler) Revert(c *fiber.Ctx) error {
	out, err := h.lifecycleUC.RevertOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Move godoc
// @Summary      Mover pedido de lote
// @Description  Destino: lote en recopilando del mismo club ("7", "ERR-2") o "INDIVIDUAL".
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del pedido"
// @Param        body  body  dto.MoveOrderRequest  true  "batch_key"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/orders/{id}/move [post]
func (h *OrderHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.BatchKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batch_key es requerido"})
	}
	out, err := h.lifecycleUC.MoveOrder(c.UserContext(), c.Params("id"), in.BatchKey)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

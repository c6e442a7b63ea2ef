package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/analytics"
	"github.com/jhoicas/clubmerch-api/internal/application/batch"
	"github.com/jhoicas/clubmerch-api/internal/application/usecase"
)

// PortalHandler vistas del portal de club. El club sale siempre del token.
type PortalHandler struct {
	orderUC     *usecase.OrderUseCase
	lifecycleUC *batch.LifecycleUseCase
	ledgerUC    *analytics.LedgerUseCase
}

// NewPortalHandler construye el handler del portal.
func NewPortalHandler(orderUC *usecase.OrderUseCase, lifecycleUC *batch.LifecycleUseCase, ledgerUC *analytics.LedgerUseCase) *PortalHandler {
	return &PortalHandler{orderUC: orderUC, lifecycleUC: lifecycleUC, ledgerUC: ledgerUC}
}

// Orders godoc
// @Summary      Pedidos del club
// @Description  Sin costes de proveedor.
// @Tags         portal
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Param        batch   query  string  false  "Lote: 7, ERR-2 o INDIVIDUAL"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Security     BearerAuth
// @Router       /api/portal/orders [get]
func (h *PortalHandler) Orders(c *fiber.Ctx) error {
	out, err := h.orderUC.ListForClub(c.UserContext(), GetClubID(c), orderQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Batches godoc
// @Summary      Lotes del club
// @Tags         portal
// @Produce      json
// @Success      200  {object}  dto.BatchListResponse
// @Security     BearerAuth
// @Router       /api/portal/batches [get]
func (h *PortalHandler) Batches(c *fiber.Ctx) error {
	out, err := h.lifecycleUC.ListBatches(c.UserContext(), GetClubID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Ledger godoc
// @Summary      Comisión del club
// @Description  Ventas y comisión devengada, total y por lote. No expone costes ni márgenes.
// @Tags         portal
// @Produce      json
// @Success      200  {object}  dto.ClubCommissionDTO
// @Security     BearerAuth
// @Router       /api/portal/ledger [get]
func (h *PortalHandler) Ledger(c *fiber.Ctx) error {
	out, err := h.ledgerUC.ClubCommission(c.UserContext(), GetClubID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

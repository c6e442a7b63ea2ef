package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/analytics"
	"github.com/jhoicas/clubmerch-api/internal/application/dto"
)

// LedgerHandler libros contables recalculados a partir de los pedidos.
type LedgerHandler struct {
	uc *analytics.LedgerUseCase
}

// NewLedgerHandler construye el handler de contabilidad.
func NewLedgerHandler(uc *analytics.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Global godoc
// @Summary      Libro global
// @Tags         ledger
// @Produce      json
// @Param        club_id  query  string  false  "Limitar a un club"
// @Param        from     query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to       query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Success      200  {object}  dto.GlobalLedgerDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/ledger [get]
func (h *LedgerHandler) Global(c *fiber.Ctx) error {
	out, err := h.uc.GlobalLedger(c.UserContext(), dto.LedgerQuery{
		ClubID: c.Query("club_id"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Club godoc
// @Summary      Libro de un club
// @Tags         ledger
// @Produce      json
// @Param        clubId  path  string  true  "ID del club"
// @Success      200  {object}  dto.ClubLedgerDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs/{clubId}/ledger [get]
func (h *LedgerHandler) Club(c *fiber.Ctx) error {
	out, err := h.uc.ClubLedger(c.UserContext(), c.Params("clubId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Batch godoc
// @Summary      Libro de un lote
// @Description  type=individual con number=0 da el libro de los envíos individuales.
// @Tags         ledger
// @Produce      json
// @Param        clubId  path  string  true  "ID del club"
// @Param        type    path  string  true  "global | error | individual"
// @Param        number  path  int     true  "Número de lote"
// @Success      200  {object}  dto.BatchLedgerDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs/{clubId}/batches/{type}/{number}/ledger [get]
func (h *LedgerHandler) Batch(c *fiber.Ctx) error {
	clubID, batchType, number, err := batchRef(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.BatchLedger(c.UserContext(), clubID, batchType, number)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/batch"
	"github.com/jhoicas/clubmerch-api/internal/application/usecase"
	"github.com/jhoicas/clubmerch-api/internal/domain"
)

// BatchHandler ciclo de vida de lotes desde el panel.
type BatchHandler struct {
	uc       *batch.LifecycleUseCase
	deleteUC *usecase.DeleteUseCase
}

// NewBatchHandler construye el handler de lotes.
func NewBatchHandler(uc *batch.LifecycleUseCase, deleteUC *usecase.DeleteUseCase) *BatchHandler {
	return &BatchHandler{uc: uc, deleteUC: deleteUC}
}

// batchRef extrae club, tipo y número de la ruta .../clubs/:clubId/batches/:type/:number.
func batchRef(c *fiber.Ctx) (clubID, batchType string, number int, err error) {
	clubID = c.Params("clubId")
	batchType = strings.ToLower(c.Params("type"))
	number, err = strconv.Atoi(c.Params("number"))
	if err != nil || number < 0 {
		return "", "", 0, fmt.Errorf("%w: número de lote %q", domain.ErrInvalidInput, c.Params("number"))
	}
	return clubID, batchType, number, nil
}

// List godoc
// @Summary      Listar lotes de un club
// @Tags         batches
// @Produce      json
// @Param        clubId  path  string  true  "ID del club"
// @Success      200  {object}  dto.BatchListResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs/{clubId}/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListBatches(c.UserContext(), c.Params("clubId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener lote
// @Tags         batches
// @Produce      json
// @Param        clubId  path  string  true  "ID del club"
// @Param        type    path  string  true  "global | error"
// @Param        number  path  int     true  "Número de lote"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs/{clubId}/batches/{type}/{number} [get]
func (h *BatchHandler) Get(c *fiber.Ctx) error {
	clubID, batchType, number, err := batchRef(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetBatch(c.UserContext(), clubID, batchType, number)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Advance godoc
// @Summary      Avanzar lote
// @Description  recopilando -> en_produccion (abre el siguiente lote) -> entregado_club.
// @Tags         batches
// @Produce      json
// @Param        clubId  path  string  true  "ID del club"
// @Param        type    path  string  true  "global | error"
// @Param        number  path  int     true  "Número de lote"
// @Success      200  {object}  dto.BatchTransitionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs/{clubId}/batches/{type}/{number}/advance [post]
func (h *BatchHandler) Advance(c *fiber.Ctx) error {
	clubID, batchType, number, err := batchRef(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AdvanceBatch(c.UserContext(), clubID, batchType, number)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Revert godoc
// @Summary      Retroceder lote
// @Description  Volver a recopilando solo si el lote en recopilando del mismo tipo está vacío.
// @Tags         batches
// @Produce      json
// @Param        clubId  path  string  true  "ID del club"
// @Param        type    path  string  true  "global | error"
// @Param        number  path  int     true  "Número de lote"
// @Success      200  {object}  dto.BatchTransitionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs/{clubId}/batches/{type}/{number}/revert [post]
func (h *BatchHandler) Revert(c *fiber.Ctx) error {
	clubID, batchType, number, err := batchRef(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RevertBatch(c.UserContext(), clubID, batchType, number)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar lote
// @Description  El lote en recopilando no se puede borrar; con pedidos requiere cascade=true.
// @Tags         batches
// @Produce      json
// @Param        clubId   path   string  true   "ID del club"
// @Param        type     path   string  true   "global | error"
// @Param        number   path   int     true   "Número de lote"
// @Param        cascade  query  bool    false  "Borrar también sus pedidos"
// @Success      200  {object}  dto.DeleteResultResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs/{clubId}/batches/{type}/{number} [delete]
func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	clubID, batchType, number, err := batchRef(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.deleteUC.DeleteBatch(c.UserContext(), clubID, batchType, number, c.QueryBool("cascade", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

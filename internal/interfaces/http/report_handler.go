package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/report"
)

// ReportHandler descarga de hojas de producción.
type ReportHandler struct {
	uc *report.SheetUseCase
}

// NewReportHandler construye el handler de informes.
func NewReportHandler(uc *report.SheetUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// PDF godoc
// @Summary      Hoja de producción en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        clubId  path  string  true  "ID del club"
// @Param        type    path  string  true  "global | error | individual"
// @Param        number  path  int     true  "Número de lote"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs/{clubId}/batches/{type}/{number}/sheet.pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error { return h.download(c, "pdf") }

// XLSX godoc
// @Summary      Hoja de producción en Excel
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        clubId  path  string  true  "ID del club"
// @Param        type    path  string  true  "global | error | individual"
// @Param        number  path  int     true  "Número de lote"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs/{clubId}/batches/{type}/{number}/sheet.xlsx [get]
func (h *ReportHandler) XLSX(c *fiber.Ctx) error { return h.download(c, "xlsx") }

func (h *ReportHandler) download(c *fiber.Ctx, format string) error {
	clubID, batchType, number, err := batchRef(c)
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.uc.Download(c.UserContext(), clubID, batchType, number, format)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Send(doc.Body)
}

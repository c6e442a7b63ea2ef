package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/application/incident"
)

// IncidentHandler incidencias y pedidos de reposición.
type IncidentHandler struct {
	uc *incident.ReplacementUseCase
}

// NewIncidentHandler construye el handler de incidencias.
func NewIncidentHandler(uc *incident.ReplacementUseCase) *IncidentHandler {
	return &IncidentHandler{uc: uc}
}

// CreateReplacement godoc
// @Summary      Registrar incidencia y generar reposición
// @Description  La reposición va al lote de error en recopilando del club o a envío individual.
// @Tags         incidents
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del pedido original"
// @Param        body  body  dto.CreateReplacementRequest  true  "Líneas afectadas y motivo"
// @Success      201   {object}  dto.ReplacementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/orders/{id}/replacements [post]
func (h *IncidentHandler) CreateReplacement(c *fiber.Ctx) error {
	var in dto.CreateReplacementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateReplacement(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Resolve godoc
// @Summary      Marcar incidencia como resuelta
// @Tags         incidents
// @Produce      json
// @Param        id          path  string  true  "ID del pedido original"
// @Param        incidentId  path  string  true  "ID de la incidencia"
// @Success      200  {object}  dto.IncidentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/orders/{id}/incidents/{incidentId}/resolve [post]
func (h *IncidentHandler) Resolve(c *fiber.Ctx) error {
	out, err := h.uc.ResolveIncident(c.UserContext(), c.Params("id"), c.Params("incidentId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar incidencias
// @Tags         incidents
// @Produce      json
// @Param        club_id  query  string  false  "Club"
// @Param        open     query  bool    false  "Solo abiertas"
// @Success      200  {object}  dto.IncidentListResponse
// @Security     BearerAuth
// @Router       /api/admin/incidents [get]
func (h *IncidentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListIncidents(c.UserContext(), c.Query("club_id"), c.QueryBool("open", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

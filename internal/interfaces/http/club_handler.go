package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/application/usecase"
)

// ClubHandler maneja las peticiones HTTP para el recurso Club.
type ClubHandler struct {
	uc       *usecase.ClubUseCase
	deleteUC *usecase.DeleteUseCase
}

// NewClubHandler construye el handler inyectando los casos de uso.
func NewClubHandler(uc *usecase.ClubUseCase, deleteUC *usecase.DeleteUseCase) *ClubHandler {
	return &ClubHandler{uc: uc, deleteUC: deleteUC}
}

// Create godoc
// @Summary      Crear club
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClubRequest  true  "Datos del club"
// @Success      201   {object}  dto.ClubResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs [post]
func (h *ClubHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClubRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener club por ID
// @Tags         clubs
// @Produce      json
// @Param        id   path  string  true  "ID del club"
// @Success      200  {object}  dto.ClubResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs/{id} [get]
func (h *ClubHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar clubs
// @Tags         clubs
// @Produce      json
// @Success      200  {object}  dto.ClubListResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs [get]
func (h *ClubHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar club
// @Description  Campos omitidos no cambian. password vacío retira el acceso al portal.
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del club"
// @Param        body  body  dto.UpdateClubRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ClubResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs/{id} [put]
func (h *ClubHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClubRequest
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
// @Summary      Eliminar club
// @Description  Con pedidos requiere cascade=true, que borra también pedidos y lotes.
// @Tags         clubs
// @Produce      json
// @Param        id       path   string  true   "ID del club"
// @Param        cascade  query  bool    false  "Borrado en cascada"
// @Success      200  {object}  dto.DeleteResultResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs/{id} [delete]
func (h *ClubHandler) Delete(c *fiber.Ctx) error {
	out, err := h.deleteUC.DeleteClub(c.UserContext(), c.Params("id"), c.QueryBool("cascade", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

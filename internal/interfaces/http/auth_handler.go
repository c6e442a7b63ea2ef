package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/auth"
	"github.com/jhoicas/clubmerch-api/internal/application/dto"
)

// AuthHandler emite tokens para el panel y para el portal de clubs.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Admin godoc
// @Summary      Acceso de administración
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminLoginRequest  true  "password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/admin [post]
func (h *AuthHandler) Admin(c *fiber.Ctx) error {
	var in dto.AdminLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password es requerido"})
	}
	out, err := h.uc.AdminLogin(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Club godoc
// @Summary      Acceso al portal de un club
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClubLoginRequest  true  "code, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/club [post]
func (h *AuthHandler) Club(c *fiber.Ctx) error {
	var in dto.ClubLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Code == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y password son requeridos"})
	}
	out, err := h.uc.ClubLogin(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/domain"
)

// clubLookup es lo mínimo que necesita el middleware; lo implementa *usecase.ClubUseCase.
type clubLookup interface {
	GetByID(ctx context.Context, id string) (*dto.ClubResponse, error)
}

// RequireActiveClub comprueba que el club del token sigue existiendo y conserva el acceso
// al portal. Un club borrado o sin contraseña invalida los tokens ya emitidos.
// Debe usarse después de AuthMiddleware.
//
//   - 401 si el token no trae club o el club ya no tiene acceso.
//   - 503 si falla la consulta.
func RequireActiveClub(clubs clubLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clubID := GetClubID(c)
		if clubID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "club_id no encontrado en el token"})
		}
		club, err := clubs.GetByID(c.UserContext(), clubID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "CLUB_REVOKED", Message: "el club ya no existe"})
		case err != nil:
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "CLUB_CHECK_FAILED", Message: "no se pudo verificar el club, intente más tarde"})
		case !club.HasPortalAccess:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "CLUB_REVOKED", Message: "el club no tiene acceso al portal"})
		}
		return c.Next()
	}
}

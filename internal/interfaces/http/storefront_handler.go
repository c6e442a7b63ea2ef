package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/application/usecase"
)

// StorefrontHandler entrada pública de pedidos de la tienda.
type StorefrontHandler struct {
	uc *usecase.OrderUseCase
}

// NewStorefrontHandler construye el handler de la tienda.
func NewStorefrontHandler(uc *usecase.OrderUseCase) *StorefrontHandler {
	return &StorefrontHandler{uc: uc}
}

// CreateOrder godoc
// @Summary      Registrar pedido
// @Description  El pedido entra en el lote global en recopilando del club, o en envío individual. El coste de proveedor no se acepta ni se devuelve.
// @Tags         storefront
// @Accept       json
// @Produce      json
// @Param        code  path  string                  true  "Código del club"
// @Param        body  body  dto.StorefrontOrderRequest  true  "Pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/storefront/clubs/{code}/orders [post]
func (h *StorefrontHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.StorefrontOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.PlaceStorefrontOrder(c.UserContext(), c.Params("code"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

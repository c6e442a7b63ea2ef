package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido con coste de proveedor. Solo la envían el panel y la carga masiva.
type OrderItemRequest struct {
	ProductID             string          `json:"product_id"`
	Name                  string          `json:"name"`
	Size                  string          `json:"size"`
	PersonalizationName   string          `json:"personalization_name"`
	PersonalizationNumber string          `json:"personalization_number"`
	Quantity              int             `json:"quantity"`
	UnitPrice             decimal.Decimal `json:"unit_price"`
	UnitCost              decimal.Decimal `json:"unit_cost"`
}

// CreateOrderRequest alta de pedido con costes, para la carga masiva.
type CreateOrderRequest struct {
	CustomerName       string             `json:"customer_name"`
	CustomerEmail      string             `json:"customer_email"`
	CustomerPhone      string             `json:"customer_phone"`
	PaymentMethod      string             `json:"payment_method"`
	Items              []OrderItemRequest `json:"items"`
	ShippingFee        decimal.Decimal    `json:"shipping_fee"`
	IndividualShipping bool               `json:"individual_shipping"`
	Notes              string             `json:"notes"`
}

// StorefrontItemRequest línea enviada por la tienda pública. El coste no viaja: lo fija el panel.
type StorefrontItemRequest struct {
	ProductID             string          `json:"product_id"`
	Name                  string          `json:"name"`
	Size                  string          `json:"size"`
	PersonalizationName   string          `json:"personalization_name"`
	PersonalizationNumber string          `json:"personalization_number"`
	Quantity              int             `json:"quantity"`
	UnitPrice             decimal.Decimal `json:"unit_price"`
}

// StorefrontOrderRequest pedido de la tienda de un club.
type StorefrontOrderRequest struct {
	CustomerName       string                  `json:"customer_name"`
	CustomerEmail      string                  `json:"customer_email"`
	CustomerPhone      string                  `json:"customer_phone"`
	PaymentMethod      string                  `json:"payment_method"`
	Items              []StorefrontItemRequest `json:"items"`
	ShippingFee        decimal.Decimal         `json:"shipping_fee"`
	IndividualShipping bool                    `json:"individual_shipping"`
	Notes              string                  `json:"notes"`
}

// CreateOrder convierte el pedido de la tienda con coste cero en todas las líneas.
func (r StorefrontOrderRequest) CreateOrder() CreateOrderRequest {
	items := make([]OrderItemRequest, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, OrderItemRequest{
			ProductID:             it.ProductID,
			Name:                  it.Name,
			Size:                  it.Size,
			PersonalizationName:   it.PersonalizationName,
			PersonalizationNumber: it.PersonalizationNumber,
			Quantity:              it.Quantity,
			UnitPrice:             it.UnitPrice,
		})
	}
	return CreateOrderRequest{
		CustomerName:       r.CustomerName,
		CustomerEmail:      r.CustomerEmail,
		CustomerPhone:      r.CustomerPhone,
		PaymentMethod:      r.PaymentMethod,
		Items:              items,
		ShippingFee:        r.ShippingFee,
		IndividualShipping: r.IndividualShipping,
		Notes:              r.Notes,
	}
}

// UpdateOrderRequest edición desde el panel. Items solo se acepta mientras el pedido está en recopilando.
type UpdateOrderRequest struct {
	CustomerName  *string            `json:"customer_name"`
	CustomerEmail *string            `json:"customer_email"`
	CustomerPhone *string            `json:"customer_phone"`
	Notes         *string            `json:"notes"`
	ShippingFee   *decimal.Decimal   `json:"shipping_fee"`
	Items         []OrderItemRequest `json:"items"`
}

// MoveOrderRequest destino de un pedido: "7", "ERR-2" o "INDIVIDUAL".
type MoveOrderRequest struct {
	BatchKey string `json:"batch_key"`
}

// OrderItemResponse línea de pedido. UnitCost va vacío en las vistas de club y tienda.
type OrderItemResponse struct {
	ProductID             string           `json:"product_id"`
	Name                  string           `json:"name"`
	Size                  string           `json:"size"`
	PersonalizationName   string           `json:"personalization_name,omitempty"`
	PersonalizationNumber string           `json:"personalization_number,omitempty"`
	Quantity              int              `json:"quantity"`
	UnitPrice             decimal.Decimal  `json:"unit_price"`
	UnitCost              *decimal.Decimal `json:"unit_cost,omitempty"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string              `json:"id"`
	GlobalID        string              `json:"global_id"`
	ClubID          string              `json:"club_id"`
	CustomerName    string              `json:"customer_name"`
	CustomerEmail   string              `json:"customer_email"`
	CustomerPhone   string              `json:"customer_phone"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	ShippingFee     decimal.Decimal     `json:"shipping_fee"`
	Total           decimal.Decimal     `json:"total"`
	PaymentMethod   string              `json:"payment_method"`
	Status          string              `json:"status"`
	BatchType       string              `json:"batch_type"`
	BatchNumber     int                 `json:"batch_number"`
	BatchKey        string              `json:"batch_key"`
	IsReplacement   bool                `json:"is_replacement"`
	OriginalOrderID string              `json:"original_order_id,omitempty"`
	ChargedAmount   decimal.Decimal     `json:"charged_amount"`
	Incidents       []IncidentResponse  `json:"incidents"`
	Notes           string              `json:"notes"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OrderListQuery filtros del listado de pedidos (query string).
type OrderListQuery struct {
	ClubID      string `query:"club_id"`
	Status      string `query:"status"`
	BatchKey    string `query:"batch"`       // "7", "ERR-2" o "INDIVIDUAL"
	Replacement string `query:"replacement"` // "true" / "false"
	From        string `query:"from"`        // YYYY-MM-DD
	To          string `query:"to"`          // YYYY-MM-DD, inclusivo
	PageRequest
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncidentItemRequest línea a reponer: índice en el pedido original y unidades.
type IncidentItemRequest struct {
	ItemIndex int `json:"item_index"`
	Quantity  int `json:"quantity"`
}

// CreateReplacementRequest alta de una incidencia con su pedido de reposición.
type CreateReplacementRequest struct {
	Reason        string                `json:"reason"`
	Items         []IncidentItemRequest `json:"items"`
	Individual    bool                  `json:"individual"`     // enviar directamente al cliente
	ChargedAmount decimal.Decimal       `json:"charged_amount"` // normalmente 0
}

// IncidentResponse incidencia de un pedido.
type IncidentResponse struct {
	ID                 string                `json:"id"`
	OrderID            string                `json:"order_id"`
	OrderGlobalID      string                `json:"order_global_id"`
	ClubID             string                `json:"club_id"`
	Reason             string                `json:"reason"`
	Items              []IncidentItemRequest `json:"items"`
	ReplacementOrderID string                `json:"replacement_order_id"`
	Resolved           bool                  `json:"resolved"`
	CreatedAt          time.Time             `json:"created_at"`
}

// ReplacementResponse resultado de generar una reposición.
type ReplacementResponse struct {
	Incident    IncidentResponse `json:"incident"`
	Replacement OrderResponse    `json:"replacement"`
}

// IncidentListResponse incidencias para el panel.
type IncidentListResponse struct {
	Items []IncidentResponse `json:"items"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerDTO totales contables redondeados a 2 decimales.
type LedgerDTO struct {
	Orders               int             `json:"orders"`
	Replacements         int             `json:"replacements"`
	Units                int             `json:"units"`
	ReplacementUnits     int             `json:"replacement_units"`
	Cash                 decimal.Decimal `json:"cash"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	SupplierCost         decimal.Decimal `json:"supplier_cost"`
	ReplacementCost      decimal.Decimal `json:"replacement_cost"`
	ClubCommission       decimal.Decimal `json:"club_commission"`
	CommercialCommission decimal.Decimal `json:"commercial_commission"`
	GatewayFees          decimal.Decimal `json:"gateway_fees"`
	ShippingCosts        decimal.Decimal `json:"shipping_costs"`
	NetProfit            decimal.Decimal `json:"net_profit"`
}

// BatchLedgerDTO libro de un lote.
type BatchLedgerDTO struct {
	ClubID      string `json:"club_id"`
	BatchType   string `json:"batch_type"`
	BatchNumber int    `json:"batch_number"`
	BatchKey    string `json:"batch_key"`
	Status      string `json:"status,omitempty"`
	LedgerDTO
}

// ClubLedgerDTO libro de un club con el detalle por lote.
type ClubLedgerDTO struct {
	ClubID   string           `json:"club_id"`
	ClubName string           `json:"club_name"`
	Totals   LedgerDTO        `json:"totals"`
	Batches  []BatchLedgerDTO `json:"batches"`
}

// GlobalLedgerDTO respuesta de GET /api/admin/ledger.
type GlobalLedgerDTO struct {
	Totals         LedgerDTO        `json:"totals"`
	Clubs          []ClubLedgerDTO  `json:"clubs"`
	Batches        []BatchLedgerDTO `json:"batches"`
	OrdersByStatus map[string]int   `json:"orders_by_status"`
	OpenIncidents  int              `json:"open_incidents"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

// ClubCommissionDTO lo que ve un club en su portal: ventas y comisión, sin costes internos.
type ClubCommissionDTO struct {
	ClubID         string                   `json:"club_id"`
	Orders         int                      `json:"orders"`
	Units          int                      `json:"units"`
	Subtotal       decimal.Decimal          `json:"subtotal"`
	ClubCommission decimal.Decimal          `json:"club_commission"`
	Batches        []ClubBatchCommissionDTO `json:"batches"`
}

// ClubBatchCommissionDTO comisión de un lote en el portal del club.
type ClubBatchCommissionDTO struct {
	BatchKey       string          `json:"batch_key"`
	Status         string          `json:"status,omitempty"`
	Orders         int             `json:"orders"`
	Units          int             `json:"units"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ClubCommission decimal.Decimal `json:"club_commission"`
}

// LedgerQuery filtros del libro global (query string).
type LedgerQuery struct {
	ClubID string `query:"club_id"`
	From   string `query:"from"` // YYYY-MM-DD
	To     string `query:"to"`   // YYYY-MM-DD, inclusivo
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago. Solo las tarjetas generan comisión de pasarela.
const (
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentBizum    = "bizum"
	PaymentCash     = "cash"
)

// OrderItem línea de pedido con su personalización.
type OrderItem struct {
	ProductID             string          `json:"product_id"`
	Name                  string          `json:"name"`
	Size                  string          `json:"size"`
	PersonalizationName   string          `json:"personalization_name,omitempty"`
	PersonalizationNumber string          `json:"personalization_number,omitempty"`
	Quantity              int             `json:"quantity"`
	UnitPrice             decimal.Decimal `json:"unit_price"`
	UnitCost              decimal.Decimal `json:"unit_cost"`
}

// IncidentItem referencia una línea del pedido original y cuántas unidades se reponen.
type IncidentItem struct {
	ItemIndex int `json:"item_index"`
	Quantity  int `json:"quantity"`
}

// Incident registra un problema con un pedido y el pedido de reposición que lo compensa.
type Incident struct {
	ID                 string         `json:"id"`
	Reason             string         `json:"reason"`
	Items              []IncidentItem `json:"items"`
	ReplacementOrderID string         `json:"replacement_order_id"`
	Resolved           bool           `json:"resolved"`
	CreatedAt          time.Time      `json:"created_at"`
}

// Order pedido de la tienda de un club. Items e Incidents se guardan como documentos JSONB.
type Order struct {
	ID              string
	GlobalID        string // CODE-000123; las reposiciones añaden -R<n>
	ClubID          string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Items           []OrderItem
	ShippingFee     decimal.Decimal
	Total           decimal.Decimal // cobrado al cliente: subtotal + envío
	PaymentMethod   string
	Status          string
	BatchType       string
	BatchNumber     int
	IsReplacement   bool
	OriginalOrderID string
	ChargedAmount   decimal.Decimal // lo que se cobra por una reposición (normalmente 0)
	Incidents       []Incident
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BatchKey devuelve la clave visible del lote al que pertenece el pedido.
func (o *Order) BatchKey() string {
	return BatchKey(o.BatchType, o.BatchNumber)
}

// InBatch indica si el pedido pertenece al lote (tipo, número).
func (o *Order) InBatch(batchType string, number int) bool {
	return o.BatchType == batchType && o.BatchNumber == number
}

// Units total de unidades del pedido.
func (o *Order) Units() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// Subtotal suma cantidad × precio de las líneas.
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// OpenIncidents cuenta las incidencias sin resolver.
func (o *Order) OpenIncidents() int {
	n := 0
	for _, inc := range o.Incidents {
		if !inc.Resolved {
			n++
		}
	}
	return n
}

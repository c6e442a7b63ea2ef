package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Club representa un club deportivo con tienda propia y portal de seguimiento.
type Club struct {
	ID            string
	Name          string
	Code          string          // slug único usado en la tienda y en los GlobalID de pedidos
	CommissionPct decimal.Decimal // comisión del club sobre el subtotal, en puntos (10 = 10%)
	ContactEmail  string
	PasswordHash  string // bcrypt; vacío = sin acceso al portal
	OrderSeq      int    // último consecutivo de pedido asignado
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

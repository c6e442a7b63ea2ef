// Package ledger recalcula el libro contable a partir de los pedidos crudos
// (servicio de dominio puro). Nada de lo que calcula se persiste.
//
// Por pedido no cancelado:
//
//	Caja              = Total (o ChargedAmount en reposiciones)
//	CosteProveedor    = Σ cantidad × coste unitario
//	ComisiónClub      = Subtotal × %club / 100
//	ComisiónComercial = Subtotal × %comercial / 100
//	Pasarela          = Caja × %pasarela / 100 + fijo   (solo tarjeta y Caja > 0)
//	Envío             = coste de envío individual        (solo envíos individuales)
//	Beneficio         = Caja − CosteProveedor − Comisiones − Pasarela − Envío
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Settings parámetros globales del cálculo (porcentajes en puntos).
type Settings struct {
	CommercialCommissionPct decimal.Decimal
	GatewayFeePct           decimal.Decimal
	GatewayFixedFee         decimal.Decimal
	IndividualShippingCost  decimal.Decimal
}

// Breakdown desglose contable de un pedido o de un conjunto de pedidos.
type Breakdown struct {
	Cash                 decimal.Decimal
	Subtotal             decimal.Decimal
	SupplierCost         decimal.Decimal
	ReplacementCost      decimal.Decimal // parte de SupplierCost debida a reposiciones
	ClubCommission       decimal.Decimal
	CommercialCommission decimal.Decimal
	GatewayFee           decimal.Decimal
	ShippingCost         decimal.Decimal
	NetProfit            decimal.Decimal
}

func (b *Breakdown) add(o Breakdown) {
	b.Cash = b.Cash.Add(o.Cash)
	b.Subtotal = b.Subtotal.Add(o.Subtotal)
	b.SupplierCost = b.SupplierCost.Add(o.SupplierCost)
	b.ReplacementCost = b.ReplacementCost.Add(o.ReplacementCost)
	b.ClubCommission = b.ClubCommission.Add(o.ClubCommission)
	b.CommercialCommission = b.CommercialCommission.Add(o.CommercialCommission)
	b.GatewayFee = b.GatewayFee.Add(o.GatewayFee)
	b.ShippingCost = b.ShippingCost.Add(o.ShippingCost)
	b.NetProfit = b.NetProfit.Add(o.NetProfit)
}

// Ledger totales agregados más contadores.
type Ledger struct {
	Breakdown
	Orders           int
	Replacements     int
	Units            int
	ReplacementUnits int
}

// Add suma el desglose de un pedido ya calculado.
func (l *Ledger) Add(o *entity.Order, b Breakdown) {
	l.Breakdown.add(b)
	l.Orders++
	l.Units += o.Units()
	if o.IsReplacement {
		l.Replacements++
		l.ReplacementUnits += o.Units()
	}
}

// BatchRef identifica un lote dentro de un club.
type BatchRef struct {
	ClubID string
	Type   string
	Number int
}

// BatchLedger libro de un lote concreto.
type BatchLedger struct {
	BatchRef
	Ledger
}

// ClubLedger libro de un club.
type ClubLedger struct {
	ClubID string
	Ledger
}

// Calculator aplica las fórmulas con la comisión de cada club.
type Calculator struct {
	settings   Settings
	commission map[string]decimal.Decimal
}

// NewCalculator construye el calculador. Los clubs desconocidos se liquidan con comisión 0.
func NewCalculator(s Settings, clubs []*entity.Club) *Calculator {
	commission := make(map[string]decimal.Decimal, len(clubs))
	for _, c := range clubs {
		commission[c.ID] = c.CommissionPct
	}
	return &Calculator{settings: s, commission: commission}
}

// Order devuelve el desglose de un pedido. Los cancelados devuelven ceros.
func (c *Calculator) Order(o *entity.Order) Breakdown {
	var b Breakdown
	if o.Status == entity.StatusCancelled {
		return b
	}

	for _, it := range o.Items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		b.SupplierCost = b.SupplierCost.Add(it.UnitCost.Mul(qty))
	}

	if o.IsReplacement {
		b.Cash = o.ChargedAmount
		b.ReplacementCost = b.SupplierCost
	} else {
		b.Subtotal = o.Subtotal()
		b.Cash = o.Total
		b.ClubCommission = b.Subtotal.Mul(c.commission[o.ClubID]).Div(hundred)
		b.CommercialCommission = b.Subtotal.Mul(c.settings.CommercialCommissionPct).Div(hundred)
	}

	if o.PaymentMethod == entity.PaymentCard && b.Cash.IsPositive() {
		b.GatewayFee = b.Cash.Mul(c.settings.GatewayFeePct).Div(hundred).Add(c.settings.GatewayFixedFee)
	}
	if o.BatchType == entity.BatchTypeIndividual {
		b.ShippingCost = c.settings.IndividualShippingCost
	}

	b.NetProfit = b.Cash.
		Sub(b.SupplierCost).
		Sub(b.ClubCommission).
		Sub(b.CommercialCommission).
		Sub(b.GatewayFee).
		Sub(b.ShippingCost)
	return b
}

// Aggregate suma todos los pedidos no cancelados.
func (c *Calculator) Aggregate(orders []*entity.Order) Ledger {
	var l Ledger
	for _, o := range orders {
		if o.Status == entity.StatusCancelled {
			continue
		}
		l.Add(o, c.Order(o))
	}
	return l
}

// ByBatch agrupa por (club, tipo, número). Orden: club, tipo (global, error, individual), número.
func (c *Calculator) ByBatch(orders []*entity.Order) []BatchLedger {
	idx := make(map[BatchRef]*BatchLedger)
	for _, o := range orders {
		if o.Status == entity.StatusCancelled {
			continue
		}
		ref := BatchRef{ClubID: o.ClubID, Type: o.BatchType, Number: o.BatchNumber}
		bl, ok := idx[ref]
		if !ok {
			bl = &BatchLedger{BatchRef: ref}
			idx[ref] = bl
		}
		bl.Add(o, c.Order(o))
	}
	out := make([]BatchLedger, 0, len(idx))
	for _, bl := range idx {
		out = append(out, *bl)
	}
	SortBatches(out)
	return out
}

// SortBatches ordena por club, tipo (global, error, individual) y número.
func SortBatches(list []BatchLedger) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].BatchRef, list[j].BatchRef
		if a.ClubID != b.ClubID {
			return a.ClubID < b.ClubID
		}
		if a.Type != b.Type {
			return typeRank(a.Type) < typeRank(b.Type)
		}
		return a.Number < b.Number
	})
}

// ByClub agrupa por club, ordenado por beneficio neto descendente.
func (c *Calculator) ByClub(orders []*entity.Order) []ClubLedger {
	idx := make(map[string]*ClubLedger)
	for _, o := range orders {
		if o.Status == entity.StatusCancelled {
			continue
		}
		cl, ok := idx[o.ClubID]
		if !ok {
			cl = &ClubLedger{ClubID: o.ClubID}
			idx[o.ClubID] = cl
		}
		cl.Add(o, c.Order(o))
	}
	out := make([]ClubLedger, 0, len(idx))
	for _, cl := range idx {
		out = append(out, *cl)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].NetProfit.Equal(out[j].NetProfit) {
			return out[i].NetProfit.GreaterThan(out[j].NetProfit)
		}
		return out[i].ClubID < out[j].ClubID
	})
	return out
}

func typeRank(t string) int {
	switch t {
	case entity.BatchTypeGlobal:
		return 0
	case entity.BatchTypeError:
		return 1
	default:
		return 2
	}
}

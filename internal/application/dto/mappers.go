package dto

import (
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
)

// FromClub convierte la entidad en su salida pública.
func FromClub(c *entity.Club) *ClubResponse {
	if c == nil {
		return nil
	}
	return &ClubResponse{
		ID:              c.ID,
		Name:            c.Name,
		Code:            c.Code,
		ContactEmail:    c.ContactEmail,
		CommissionPct:   c.CommissionPct,
		HasPortalAccess: c.PasswordHash != "",
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// FromOrder convierte un pedido con sus líneas e incidencias.
func FromOrder(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		cost := it.UnitCost
		items = append(items, OrderItemResponse{
			ProductID:             it.ProductID,
			Name:                  it.Name,
			Size:                  it.Size,
			PersonalizationName:   it.PersonalizationName,
			PersonalizationNumber: it.PersonalizationNumber,
			Quantity:              it.Quantity,
			UnitPrice:             it.UnitPrice,
			UnitCost:              &cost,
		})
	}
	incidents := make([]IncidentResponse, 0, len(o.Incidents))
	for i := range o.Incidents {
		incidents = append(incidents, FromIncident(o, &o.Incidents[i]))
	}
	return &OrderResponse{
		ID:              o.ID,
		GlobalID:        o.GlobalID,
		ClubID:          o.ClubID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		Items:           items,
		Subtotal:        o.Subtotal(),
		ShippingFee:     o.ShippingFee,
		Total:           o.Total,
		PaymentMethod:   o.PaymentMethod,
		Status:          o.Status,
		BatchType:       o.BatchType,
		BatchNumber:     o.BatchNumber,
		BatchKey:        o.BatchKey(),
		IsReplacement:   o.IsReplacement,
		OriginalOrderID: o.OriginalOrderID,
		ChargedAmount:   o.ChargedAmount,
		Incidents:       incidents,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// FromOrderForClub como FromOrder pero sin el coste de proveedor de las líneas.
func FromOrderForClub(o *entity.Order) *OrderResponse {
	out := FromOrder(o)
	if out == nil {
		return nil
	}
	for i := range out.Items {
		out.Items[i].UnitCost = nil
	}
	return out
}

// FromIncident convierte una incidencia del pedido o.
func FromIncident(o *entity.Order, inc *entity.Incident) IncidentResponse {
	items := make([]IncidentItemRequest, 0, len(inc.Items))
	for _, it := range inc.Items {
		items = append(items, IncidentItemRequest{ItemIndex: it.ItemIndex, Quantity: it.Quantity})
	}
	return IncidentResponse{
		ID:                 inc.ID,
		OrderID:            o.ID,
		OrderGlobalID:      o.GlobalID,
		ClubID:             o.ClubID,
		Reason:             inc.Reason,
		Items:              items,
		ReplacementOrderID: inc.ReplacementOrderID,
		Resolved:           inc.Resolved,
		CreatedAt:          inc.CreatedAt,
	}
}

// FromBatch convierte un lote; orders es el número de pedidos no cancelados.
func FromBatch(b *entity.Batch, orders int) *BatchResponse {
	if b == nil {
		return nil
	}
	return &BatchResponse{
		ID:           b.ID,
		ClubID:       b.ClubID,
		Type:         b.Type,
		Number:       b.Number,
		Key:          b.Key(),
		Status:       b.Status,
		Orders:       orders,
		OpenedAt:     b.OpenedAt,
		ProductionAt: b.ProductionAt,
		DeliveredAt:  b.DeliveredAt,
	}
}

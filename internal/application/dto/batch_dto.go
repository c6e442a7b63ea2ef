package dto

import "time"

// BatchResponse salida de un lote con su número de pedidos activos.
type BatchResponse struct {
	ID           string     `json:"id"`
	ClubID       string     `json:"club_id"`
	Type         string     `json:"type"`
	Number       int        `json:"number"`
	Key          string     `json:"key"`
	Status       string     `json:"status"`
	Orders       int        `json:"orders"`
	OpenedAt     time.Time  `json:"opened_at"`
	ProductionAt *time.Time `json:"production_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
}

// BatchListResponse lotes de un club.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
}

// BatchTransitionResponse resultado de avanzar o retroceder un lote.
type BatchTransitionResponse struct {
	Batch         BatchResponse  `json:"batch"`
	OrdersUpdated int64          `json:"orders_updated"`
	OpenedBatch   *BatchResponse `json:"opened_batch,omitempty"`    // lote nuevo abierto al pasar a producción
	ClosedBatchID string         `json:"closed_batch_id,omitempty"` // lote vacío descartado al retroceder
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
)

// OrderFilter criterios de listado. Los campos vacíos o nil no filtran.
type OrderFilter struct {
	ClubID        string
	Status        string
	BatchType     string
	BatchNumber   *int
	IsReplacement *bool
	From          *time.Time
	To            *time.Time
	Limit         int // 0 = sin límite
	Offset        int
}

// OrderRepository define el puerto de persistencia para pedidos.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByID devuelve (nil, nil) si el pedido no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	ListByBatch(ctx context.Context, clubID, batchType string, number int) ([]*entity.Order, error)
	// CountByBatch cuenta los pedidos no cancelados del lote.
	CountByBatch(ctx context.Context, clubID, batchType string, number int) (int, error)
	// UpdateStatusByBatch cambia el estado de todos los pedidos no cancelados del lote.
	UpdateStatusByBatch(ctx context.Context, clubID, batchType string, number int, status string) (int64, error)
	DeleteByClub(ctx context.Context, clubID string) error
}

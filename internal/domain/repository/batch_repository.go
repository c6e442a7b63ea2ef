package repository

import (
	"context"

	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	// Get devuelve (nil, nil) si el lote no existe.
	Get(ctx context.Context, clubID, batchType string, number int) (*entity.Batch, error)
	// GetActive devuelve el lote en recopilando del tipo indicado, o (nil, nil).
	// Dentro de una transacción bloquea la fila.
	GetActive(ctx context.Context, clubID, batchType string) (*entity.Batch, error)
	MaxNumber(ctx context.Context, clubID, batchType string) (int, error)
	ListByClub(ctx context.Context, clubID string) ([]*entity.Batch, error)
	Update(ctx context.Context, batch *entity.Batch) error
	Delete(ctx context.Context, id string) error
	DeleteByClub(ctx context.Context, clubID string) error
}

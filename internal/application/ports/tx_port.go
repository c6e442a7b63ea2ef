package ports

import (
	"context"

	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo lo escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		clubRepo repository.ClubRepository,
		batchRepo repository.BatchRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

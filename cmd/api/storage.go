package main

import (
	"context"

	"github.com/jhoicas/clubmerch-api/internal/application/ports"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
	"github.com/jhoicas/clubmerch-api/internal/infrastructure/memory"
	"github.com/jhoicas/clubmerch-api/internal/infrastructure/postgres"
	"github.com/jhoicas/clubmerch-api/pkg/config"
	"github.com/jhoicas/clubmerch-api/pkg/logger"
)

// storage repositorios y runner de transacciones del backend elegido.
type storage struct {
	clubs    repository.ClubRepository
	batches  repository.BatchRepository
	orders   repository.OrderRepository
	txRunner ports.TxRunner
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == "memory" {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			clubs:    store.Clubs(),
			batches:  store.Batches(),
			orders:   store.Orders(),
			txRunner: store,
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &storage{
		clubs:    postgres.NewClubRepository(pool),
		batches:  postgres.NewBatchRepository(pool),
		orders:   postgres.NewOrderRepository(pool),
		txRunner: postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}

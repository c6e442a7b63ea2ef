// Package batch contiene el controlador del ciclo de vida de lotes y pedidos:
// recopilando -> en_produccion -> entregado, con un único lote activo por club y tipo.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/application/ports"
	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/lifecycle"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
	"github.com/jhoicas/clubmerch-api/pkg/logger"
)

// LifecycleUseCase avanza, retrocede y reasigna lotes y pedidos.
type LifecycleUseCase struct {
	txRunner  ports.TxRunner
	batchRepo repository.BatchRepository
	orderRepo repository.OrderRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(
	txRunner ports.TxRunner,
	batchRepo repository.BatchRepository,
	orderRepo repository.OrderRepository,
	log *logger.Logger,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		txRunner:  txRunner,
		batchRepo: batchRepo,
		orderRepo: orderRepo,
		log:       log.Component("batch"),
		now:       time.Now,
	}
}

// ListBatches lista los lotes de un club con su número de pedidos.
func (uc *LifecycleUseCase) ListBatches(ctx context.Context, clubID string) (*dto.BatchListResponse, error) {
	list, err := uc.batchRepo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		n, err := uc.orderRepo.CountByBatch(ctx, clubID, b.Type, b.Number)
		if err != nil {
			return nil, err
		}
		items = append(items, *dto.FromBatch(b, n))
	}
	return &dto.BatchListResponse{Items: items}, nil
}

// GetBatch devuelve un lote. domain.ErrNotFound si no existe.
func (uc *LifecycleUseCase) GetBatch(ctx context.Context, clubID, batchType string, number int) (*dto.BatchResponse, error) {
	b, err := uc.batchRepo.Get(ctx, clubID, batchType, number)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	n, err := uc.orderRepo.CountByBatch(ctx, clubID, batchType, number)
	if err != nil {
		return nil, err
	}
	return dto.FromBatch(b, n), nil
}

// EnsureActiveBatch devuelve (o abre) el lote en recopilando del tipo indicado.
func (uc *LifecycleUseCase) EnsureActiveBatch(ctx context.Context, clubID, batchType string) (*dto.BatchResponse, error) {
	var out *dto.BatchResponse
	err := uc.txRunner.Run(ctx, func(clubRepo repository.ClubRepository, batchRepo repository.BatchRepository, orderRepo repository.OrderRepository) error {
		club, err := clubRepo.GetByID(ctx, clubID)
		if err != nil {
			return err
		}
		if club == nil {
			return domain.ErrNotFound
		}
		b, err := EnsureActive(ctx, batchRepo, clubID, batchType, uc.now())
		if err != nil {
			return err
		}
		n, err := orderRepo.CountByBatch(ctx, clubID, b.Type, b.Number)
		if err != nil {
			return err
		}
		out = dto.FromBatch(b, n)
		return nil
	})
	return out, err
}

// AdvanceBatch mueve el lote al estado siguiente junto con sus pedidos.
// Al salir de recopilando abre el lote siguiente en la misma transacción.
func (uc *LifecycleUseCase) AdvanceBatch(ctx context.Context, clubID, batchType string, number int) (*dto.BatchTransitionResponse, error) {
	if !entity.IsBatchType(batchType) {
		return nil, fmt.Errorf("%w: tipo de lote %q", domain.ErrInvalidInput, batchType)
	}
	var out dto.BatchTransitionResponse
	err := uc.txRunner.Run(ctx, func(_ repository.ClubRepository, batchRepo repository.BatchRepository, orderRepo repository.OrderRepository) error {
		b, err := batchRepo.Get(ctx, clubID, batchType, number)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		next, err := lifecycle.Next(b.Type, b.Status)
		if err != nil {
			return err
		}
		leavingCollection := b.Status == entity.StatusCollecting
		if leavingCollection {
			n, err := orderRepo.CountByBatch(ctx, clubID, batchType, number)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: el lote %s no tiene pedidos", domain.ErrInvalidInput, b.Key())
			}
		}

		now := uc.now()
		b.Status = next
		b.UpdatedAt = now
		switch next {
		case entity.StatusProduction:
			b.ProductionAt = &now
		case entity.StatusDeliveredClub:
			b.DeliveredAt = &now
		}
		if err := batchRepo.Update(ctx, b); err != nil {
			return fmt.Errorf("actualizar lote: %w", err)
		}
		updated, err := orderRepo.UpdateStatusByBatch(ctx, clubID, batchType, number, next)
		if err != nil {
			return fmt.Errorf("actualizar pedidos del lote: %w", err)
		}

		out.OrdersUpdated = updated
		if leavingCollection {
			opened, err := openNext(ctx, batchRepo, clubID, batchType, now)
			if err != nil {
				return err
			}
			out.OpenedBatch = dto.FromBatch(opened, 0)
		}
		n, err := orderRepo.CountByBatch(ctx, clubID, batchType, number)
		if err != nil {
			return err
		}
		out.Batch = *dto.FromBatch(b, n)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := uc.log.Info().
		Str("club_id", clubID).
		Str("batch", out.Batch.Key).
		Str("status", out.Batch.Status).
		Int64("orders", out.OrdersUpdated)
	if out.OpenedBatch != nil {
		ev = ev.Str("opened_batch", out.OpenedBatch.Key)
	}
	ev.Msg("lote avanzado")
	return &out, nil
}

// RevertBatch devuelve el lote al estado anterior. Volver a recopilando solo es posible
// si el lote activo del mismo tipo está vacío (se descarta) y no hay lotes intermedios.
func (uc *LifecycleUseCase) RevertBatch(ctx context.Context, clubID, batchType string, number int) (*dto.BatchTransitionResponse, error) {
	if !entity.IsBatchType(batchType) {
		return nil, fmt.Errorf("%w: tipo de lote %q", domain.ErrInvalidInput, batchType)
	}
	var out dto.BatchTransitionResponse
	err := uc.txRunner.Run(ctx, func(_ repository.ClubRepository, batchRepo repository.BatchRepository, orderRepo repository.OrderRepository) error {
		b, err := batchRepo.Get(ctx, clubID, batchType, number)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		prev, err := lifecycle.Prev(b.Type, b.Status)
		if err != nil {
			return err
		}

		if prev == entity.StatusCollecting {
			closedID, err := uc.discardActive(ctx, batchRepo, orderRepo, b)
			if err != nil {
				return err
			}
			out.ClosedBatchID = closedID
			b.ProductionAt = nil
		} else {
			b.DeliveredAt = nil
		}

		b.Status = prev
		b.UpdatedAt = uc.now()
		if err := batchRepo.Update(ctx, b); err != nil {
			return fmt.Errorf("actualizar lote: %w", err)
		}
		updated, err := orderRepo.UpdateStatusByBatch(ctx, clubID, batchType, number, prev)
		if err != nil {
			return fmt.Errorf("actualizar pedidos del lote: %w", err)
		}
		out.OrdersUpdated = updated
		n, err := orderRepo.CountByBatch(ctx, clubID, batchType, number)
		if err != nil {
			return err
		}
		out.Batch = *dto.FromBatch(b, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("club_id", clubID).
		Str("batch", out.Batch.Key).
		Str("status", out.Batch.Status).
		Str("closed_batch_id", out.ClosedBatchID).
		Int64("orders", out.OrdersUpdated).
		Msg("lote revertido")
	return &out, nil
}

// discardActive elimina el lote activo vacío que se abrió cuando b pasó a producción.
func (uc *LifecycleUseCase) discardActive(
	ctx context.Context,
	batchRepo repository.BatchRepository,
	orderRepo repository.OrderRepository,
	b *entity.Batch,
) (string, error) {
	all, err := batchRepo.ListByClub(ctx, b.ClubID)
	if err != nil {
		return "", err
	}
	var active *entity.Batch
	for _, other := range all {
		if other.Type != b.Type || other.Number <= b.Number {
			continue
		}
		if other.Status != entity.StatusCollecting {
			return "", fmt.Errorf("%w: el lote %s ya pasó a %s", domain.ErrConflict, other.Key(), other.Status)
		}
		active = other
	}
	if active == nil {
		return "", nil
	}
	orders, err := orderRepo.ListByBatch(ctx, active.ClubID, active.Type, active.Number)
	if err != nil {
		return "", err
	}
	if len(orders) > 0 {
		return "", fmt.Errorf("%w: el lote activo %s ya tiene %d pedidos", domain.ErrConflict, active.Key(), len(orders))
	}
	if err := batchRepo.Delete(ctx, active.ID); err != nil {
		return "", fmt.Errorf("descartar lote %s: %w", active.Key(), err)
	}
	return active.ID, nil
}

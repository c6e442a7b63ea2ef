package batch

import (
	"context"
	"fmt"

	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/lifecycle"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
)

// AdvanceOrder avanza un pedido de envío individual. Los pedidos de un lote se mueven con su lote.
func (uc *LifecycleUseCase) AdvanceOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	return uc.stepOrder(ctx, orderID, lifecycle.Next, "pedido avanzado")
}

// RevertOrder retrocede un pedido de envío individual.
func (uc *LifecycleUseCase) RevertOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	return uc.stepOrder(ctx, orderID, lifecycle.Prev, "pedido revertido")
}

func (uc *LifecycleUseCase) stepOrder(
	ctx context.Context,
	orderID string,
	step func(batchType, status string) (string, error),
	msg string,
) (*dto.OrderResponse, error) {
	var out *entity.Order
	err := uc.txRunner.Run(ctx, func(_ repository.ClubRepository, _ repository.BatchRepository, orderRepo repository.OrderRepository) error {
		o, err := getOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}
		if o.BatchType != entity.BatchTypeIndividual {
			return fmt.Errorf("%w: el pedido %s pertenece al lote %s; cambie el estado del lote", domain.ErrConflict, o.GlobalID, o.BatchKey())
		}
		status, err := step(o.BatchType, o.Status)
		if err != nil {
			return err
		}
		o.Status = status
		o.UpdatedAt = uc.now()
		if err := orderRepo.Update(ctx, o); err != nil {
			return fmt.Errorf("actualizar pedido: %w", err)
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order", out.GlobalID).Str("status", out.Status).Msg(msg)
	return dto.FromOrder(out), nil
}

// MoveOrder reasigna un pedido a otro lote en recopilando del mismo club ("7", "ERR-2")
// o a envío individual ("INDIVIDUAL"). El pedido vuelve a recopilando.
func (uc *LifecycleUseCase) MoveOrder(ctx context.Context, orderID, batchKey string) (*dto.OrderResponse, error) {
	batchType, number, err := entity.ParseBatchKey(batchKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	var out *entity.Order
	from := ""
	err = uc.txRunner.Run(ctx, func(_ repository.ClubRepository, batchRepo repository.BatchRepository, orderRepo repository.OrderRepository) error {
		o, err := getOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}
		if o.Status == entity.StatusCancelled || lifecycle.IsFinal(o.BatchType, o.Status) {
			return fmt.Errorf("%w: el pedido %s está %s", domain.ErrConflict, o.GlobalID, o.Status)
		}
		if o.InBatch(batchType, number) {
			out = o
			return nil
		}
		if batchType != entity.BatchTypeIndividual {
			target, err := batchRepo.Get(ctx, o.ClubID, batchType, number)
			if err != nil {
				return err
			}
			if target == nil {
				return fmt.Errorf("%w: lote %s", domain.ErrNotFound, batchKey)
			}
			if target.Status != entity.StatusCollecting {
				return fmt.Errorf("%w: el lote %s está %s", domain.ErrConflict, target.Key(), target.Status)
			}
		}
		from = o.BatchKey()
		o.BatchType = batchType
		o.BatchNumber = number
		o.Status = entity.StatusCollecting
		o.UpdatedAt = uc.now()
		if err := orderRepo.Update(ctx, o); err != nil {
			return fmt.Errorf("actualizar pedido: %w", err)
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	if from != "" {
		uc.log.Info().Str("order", out.GlobalID).Str("from", from).Str("to", out.BatchKey()).Msg("pedido reasignado")
	}
	return dto.FromOrder(out), nil
}

// CancelOrder marca el pedido como cancelado; deja de contar en lotes y contabilidad.
func (uc *LifecycleUseCase) CancelOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	var out *entity.Order
	err := uc.txRunner.Run(ctx, func(_ repository.ClubRepository, _ repository.BatchRepository, orderRepo repository.OrderRepository) error {
		o, err := getOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}
		if o.Status == entity.StatusCancelled || lifecycle.IsFinal(o.BatchType, o.Status) {
			return fmt.Errorf("%w: el pedido %s está %s", domain.ErrConflict, o.GlobalID, o.Status)
		}
		o.Status = entity.StatusCancelled
		o.UpdatedAt = uc.now()
		if err := orderRepo.Update(ctx, o); err != nil {
			return fmt.Errorf("actualizar pedido: %w", err)
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order", out.GlobalID).Msg("pedido cancelado")
	return dto.FromOrder(out), nil
}

func getOrder(ctx context.Context, orderRepo repository.OrderRepository, id string) (*entity.Order, error) {
	o, err := orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

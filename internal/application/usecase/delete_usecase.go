package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/application/ports"
	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
	"github.com/jhoicas/clubmerch-api/pkg/logger"
)

// DeleteUseCase borrados de pedidos, lotes y clubs. Sin cascade, un registro con dependientes
// devuelve domain.ErrConflict.
type DeleteUseCase struct {
	txRunner ports.TxRunner
	log      *logger.Logger
}

// NewDeleteUseCase construye el caso de uso.
func NewDeleteUseCase(txRunner ports.TxRunner, log *logger.Logger) *DeleteUseCase {
	return &DeleteUseCase{txRunner: txRunner, log: log.Component("delete")}
}

// DeleteOrder elimina un pedido. Con reposiciones hace falta cascade, que las elimina también.
// Borrar una reposición desvincula la incidencia del pedido original.
func (uc *DeleteUseCase) DeleteOrder(ctx context.Context, id string, cascade bool) (*dto.DeleteResultResponse, error) {
	var out dto.DeleteResultResponse
	var globalID string
	err := uc.txRunner.Run(ctx, func(_ repository.ClubRepository, _ repository.BatchRepository, orderRepo repository.OrderRepository) error {
		o, err := orderRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		globalID = o.GlobalID
		n, err := deleteOrderTree(ctx, orderRepo, o, cascade, map[string]bool{})
		if err != nil {
			return err
		}
		out.Orders = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order", globalID).Bool("cascade", cascade).Int("orders", out.Orders).Msg("pedido eliminado")
	return &out, nil
}

// deleteOrderTree borra o y, con cascade, sus reposiciones. deleted evita borrar dos veces.
func deleteOrderTree(ctx context.Context, orderRepo repository.OrderRepository, o *entity.Order, cascade bool, deleted map[string]bool) (int, error) {
	if deleted[o.ID] {
		return 0, nil
	}
	var children []string
	for _, inc := range o.Incidents {
		if inc.ReplacementOrderID != "" && !deleted[inc.ReplacementOrderID] {
			children = append(children, inc.ReplacementOrderID)
		}
	}
	if len(children) > 0 && !cascade {
		return 0, fmt.Errorf("%w: el pedido %s tiene %d reposiciones", domain.ErrConflict, o.GlobalID, len(children))
	}
	deleted[o.ID] = true
	n := 0
	for _, childID := range children {
		child, err := orderRepo.GetByID(ctx, childID)
		if err != nil {
			return 0, err
		}
		if child == nil {
			continue
		}
		m, err := deleteOrderTree(ctx, orderRepo, child, cascade, deleted)
		if err != nil {
			return 0, err
		}
		n += m
	}
	if o.IsReplacement && o.OriginalOrderID != "" && !deleted[o.OriginalOrderID] {
		if err := unlinkReplacement(ctx, orderRepo, o); err != nil {
			return 0, err
		}
	}
	if err := orderRepo.Delete(ctx, o.ID); err != nil {
		return 0, fmt.Errorf("eliminar pedido %s: %w", o.GlobalID, err)
	}
	return n + 1, nil
}

func unlinkReplacement(ctx context.Context, orderRepo repository.OrderRepository, r *entity.Order) error {
	original, err := orderRepo.GetByID(ctx, r.OriginalOrderID)
	if err != nil || original == nil {
		return err
	}
	for i := range original.Incidents {
		if original.Incidents[i].ReplacementOrderID == r.ID {
			original.Incidents[i].ReplacementOrderID = ""
		}
	}
	if err := orderRepo.Update(ctx, original); err != nil {
		return fmt.Errorf("desvincular reposición: %w", err)
	}
	return nil
}

// DeleteBatch elimina un lote cerrado. El lote en recopilando nunca se borra;
// uno con pedidos necesita cascade (sus reposiciones se borran con ellos).
func (uc *DeleteUseCase) DeleteBatch(ctx context.Context, clubID, batchType string, number int, cascade bool) (*dto.DeleteResultResponse, error) {
	if !entity.IsBatchType(batchType) {
		return nil, fmt.Errorf("%w: tipo de lote %q", domain.ErrInvalidInput, batchType)
	}
	var out dto.DeleteResultResponse
	err := uc.txRunner.Run(ctx, func(_ repository.ClubRepository, batchRepo repository.BatchRepository, orderRepo repository.OrderRepository) error {
		b, err := batchRepo.Get(ctx, clubID, batchType, number)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Status == entity.StatusCollecting {
			return fmt.Errorf("%w: el lote %s está recopilando pedidos", domain.ErrConflict, b.Key())
		}
		orders, err := orderRepo.ListByBatch(ctx, clubID, batchType, number)
		if err != nil {
			return err
		}
		if len(orders) > 0 && !cascade {
			return fmt.Errorf("%w: el lote %s tiene %d pedidos", domain.ErrConflict, b.Key(), len(orders))
		}
		deleted := map[string]bool{}
		for _, o := range orders {
			n, err := deleteOrderTree(ctx, orderRepo, o, true, deleted)
			if err != nil {
				return err
			}
			out.Orders += n
		}
		if err := batchRepo.Delete(ctx, b.ID); err != nil {
			return fmt.Errorf("eliminar lote %s: %w", b.Key(), err)
		}
		out.Batches = 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("club_id", clubID).
		Str("batch", entity.BatchKey(batchType, number)).
		Int("orders", out.Orders).
		Msg("lote eliminado")
	return &out, nil
}

// DeleteClub elimina un club. Con pedidos hace falta cascade, que borra pedidos y lotes.
func (uc *DeleteUseCase) DeleteClub(ctx context.Context, id string, cascade bool) (*dto.DeleteResultResponse, error) {
	var out dto.DeleteResultResponse
	var code string
	err := uc.txRunner.Run(ctx, func(clubRepo repository.ClubRepository, batchRepo repository.BatchRepository, orderRepo repository.OrderRepository) error {
		club, err := clubRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if club == nil {
			return domain.ErrNotFound
		}
		code = club.Code
		orders, err := orderRepo.List(ctx, repository.OrderFilter{ClubID: id})
		if err != nil {
			return err
		}
		if len(orders) > 0 && !cascade {
			return fmt.Errorf("%w: el club %s tiene %d pedidos", domain.ErrConflict, club.Code, len(orders))
		}
		batches, err := batchRepo.ListByClub(ctx, id)
		if err != nil {
			return err
		}
		if err := orderRepo.DeleteByClub(ctx, id); err != nil {
			return fmt.Errorf("eliminar pedidos: %w", err)
		}
		if err := batchRepo.DeleteByClub(ctx, id); err != nil {
			return fmt.Errorf("eliminar lotes: %w", err)
		}
		if err := clubRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("eliminar club: %w", err)
		}
		out = dto.DeleteResultResponse{Orders: len(orders), Batches: len(batches), Clubs: 1}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Warn().
		Str("club", code).
		Int("orders", out.Orders).
		Int("batches", out.Batches).
		Msg("club eliminado")
	return &out, nil
}

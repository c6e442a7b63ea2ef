// Package incident registra incidencias sobre pedidos ya fabricados y genera
// los pedidos de reposición que las compensan.
package incident

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clubmerch-api/internal/application/batch"
	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/application/ports"
	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/lifecycle"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
	"github.com/jhoicas/clubmerch-api/pkg/logger"
)

// ReplacementUseCase genera reposiciones y gestiona las incidencias.
type ReplacementUseCase struct {
	txRunner  ports.TxRunner
	orderRepo repository.OrderRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewReplacementUseCase construye el caso de uso.
func NewReplacementUseCase(txRunner ports.TxRunner, orderRepo repository.OrderRepository, log *logger.Logger) *ReplacementUseCase {
	return &ReplacementUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		log:       log.Component("incident"),
		now:       time.Now,
	}
}

// CreateReplacement registra una incidencia sobre el pedido originalID y crea su reposición.
// La reposición va a envío individual si se pide o si el original ya lo era; si no, al lote
// de error activo del club.
func (uc *ReplacementUseCase) CreateReplacement(ctx context.Context, originalID string, in dto.CreateReplacementRequest) (*dto.ReplacementResponse, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: el motivo es obligatorio", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: indique al menos una línea a reponer", domain.ErrInvalidInput)
	}
	if in.ChargedAmount.IsNegative() {
		return nil, fmt.Errorf("%w: el importe cobrado no puede ser negativo", domain.ErrInvalidInput)
	}

	var (
		original    *entity.Order
		replacement *entity.Order
		incident    entity.Incident
	)
	err := uc.txRunner.Run(ctx, func(_ repository.ClubRepository, batchRepo repository.BatchRepository, orderRepo repository.OrderRepository) error {
		o, err := orderRepo.GetByID(ctx, originalID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Status == entity.StatusCancelled {
			return fmt.Errorf("%w: el pedido %s está cancelado", domain.ErrConflict, o.GlobalID)
		}
		if !lifecycle.AcceptsIncidents(o.BatchType, o.Status) {
			return fmt.Errorf("%w: el pedido %s sigue en %s; edítelo en lugar de reponer", domain.ErrConflict, o.GlobalID, o.Status)
		}
		items, incItems, err := replacementItems(o, in.Items)
		if err != nil {
			return err
		}

		now := uc.now()
		r := &entity.Order{
			ID:              uuid.New().String(),
			GlobalID:        fmt.Sprintf("%s-R%d", o.GlobalID, len(o.Incidents)+1),
			ClubID:          o.ClubID,
			CustomerName:    o.CustomerName,
			CustomerEmail:   o.CustomerEmail,
			CustomerPhone:   o.CustomerPhone,
			Items:           items,
			ShippingFee:     decimal.Zero,
			Total:           decimal.Zero,
			PaymentMethod:   o.PaymentMethod,
			Status:          entity.StatusCollecting,
			IsReplacement:   true,
			OriginalOrderID: o.ID,
			ChargedAmount:   in.ChargedAmount,
			Notes:           reason,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if in.Individual || o.BatchType == entity.BatchTypeIndividual {
			r.BatchType = entity.BatchTypeIndividual
		} else {
			active, err := batch.EnsureActive(ctx, batchRepo, o.ClubID, entity.BatchTypeError, now)
			if err != nil {
				return err
			}
			r.BatchType = active.Type
			r.BatchNumber = active.Number
		}
		if err := orderRepo.Create(ctx, r); err != nil {
			return fmt.Errorf("crear reposición: %w", err)
		}

		incident = entity.Incident{
			ID:                 uuid.New().String(),
			Reason:             reason,
			Items:              incItems,
			ReplacementOrderID: r.ID,
			CreatedAt:          now,
		}
		o.Incidents = append(o.Incidents, incident)
		o.UpdatedAt = now
		if err := orderRepo.Update(ctx, o); err != nil {
			return fmt.Errorf("registrar incidencia: %w", err)
		}
		original, replacement = o, r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order", original.GlobalID).
		Str("replacement", replacement.GlobalID).
		Str("batch", replacement.BatchKey()).
		Int("units", replacement.Units()).
		Msg("reposición generada")
	return &dto.ReplacementResponse{
		Incident:    dto.FromIncident(original, &incident),
		Replacement: *dto.FromOrder(replacement),
	}, nil
}

// replacementItems copia las líneas referenciadas con precio 0 y el coste original.
func replacementItems(o *entity.Order, req []dto.IncidentItemRequest) ([]entity.OrderItem, []entity.IncidentItem, error) {
	items := make([]entity.OrderItem, 0, len(req))
	refs := make([]entity.IncidentItem, 0, len(req))
	seen := make(map[int]bool, len(req))
	for _, r := range req {
		if r.ItemIndex < 0 || r.ItemIndex >= len(o.Items) {
			return nil, nil, fmt.Errorf("%w: línea %d fuera de rango (el pedido tiene %d)", domain.ErrInvalidInput, r.ItemIndex, len(o.Items))
		}
		if seen[r.ItemIndex] {
			return nil, nil, fmt.Errorf("%w: línea %d repetida", domain.ErrInvalidInput, r.ItemIndex)
		}
		seen[r.ItemIndex] = true
		src := o.Items[r.ItemIndex]
		if r.Quantity < 1 || r.Quantity > src.Quantity {
			return nil, nil, fmt.Errorf("%w: cantidad %d inválida para la línea %d (máximo %d)", domain.ErrInvalidInput, r.Quantity, r.ItemIndex, src.Quantity)
		}
		item := src
		item.Quantity = r.Quantity
		item.UnitPrice = decimal.Zero
		items = append(items, item)
		refs = append(refs, entity.IncidentItem{ItemIndex: r.ItemIndex, Quantity: r.Quantity})
	}
	return items, refs, nil
}

// ResolveIncident marca como resuelta la incidencia incidentID del pedido orderID.
func (uc *ReplacementUseCase) ResolveIncident(ctx context.Context, orderID, incidentID string) (*dto.IncidentResponse, error) {
	var out dto.IncidentResponse
	err := uc.txRunner.Run(ctx, func(_ repository.ClubRepository, _ repository.BatchRepository, orderRepo repository.OrderRepository) error {
		o, err := orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		for i := range o.Incidents {
			if o.Incidents[i].ID != incidentID {
				continue
			}
			o.Incidents[i].Resolved = true
			o.UpdatedAt = uc.now()
			if err := orderRepo.Update(ctx, o); err != nil {
				return fmt.Errorf("resolver incidencia: %w", err)
			}
			out = dto.FromIncident(o, &o.Incidents[i])
			return nil
		}
		return fmt.Errorf("%w: incidencia %s", domain.ErrNotFound, incidentID)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order", out.OrderGlobalID).Str("incident", incidentID).Msg("incidencia resuelta")
	return &out, nil
}

// ListIncidents devuelve las incidencias (solo abiertas si openOnly), de la más reciente a la más antigua.
// clubID vacío lista todas.
func (uc *ReplacementUseCase) ListIncidents(ctx context.Context, clubID string, openOnly bool) (*dto.IncidentListResponse, error) {
	orders, err := uc.orderRepo.List(ctx, repository.OrderFilter{ClubID: clubID})
	if err != nil {
		return nil, err
	}
	items := make([]dto.IncidentResponse, 0)
	for _, o := range orders {
		for i := range o.Incidents {
			if openOnly && o.Incidents[i].Resolved {
				continue
			}
			items = append(items, dto.FromIncident(o, &o.Incidents[i]))
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return &dto.IncidentListResponse{Items: items}, nil
}

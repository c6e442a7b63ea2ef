package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
)

// EnsureActive devuelve el lote en recopilando de (club, tipo) y lo crea con número max+1 si no existe.
// Pensado para ejecutarse dentro de una transacción (batchRepo atado a la tx).
func EnsureActive(ctx context.Context, batchRepo repository.BatchRepository, clubID, batchType string, now time.Time) (*entity.Batch, error) {
	if !entity.IsBatchType(batchType) {
		return nil, fmt.Errorf("%w: tipo de lote %q", domain.ErrInvalidInput, batchType)
	}
	active, err := batchRepo.GetActive(ctx, clubID, batchType)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return active, nil
	}
	return openNext(ctx, batchRepo, clubID, batchType, now)
}

func openNext(ctx context.Context, batchRepo repository.BatchRepository, clubID, batchType string, now time.Time) (*entity.Batch, error) {
	max, err := batchRepo.MaxNumber(ctx, clubID, batchType)
	if err != nil {
		return nil, err
	}
	b := &entity.Batch{
		ID:        uuid.New().String(),
		ClubID:    clubID,
		Type:      batchType,
		Number:    max + 1,
		Status:    entity.StatusCollecting,
		OpenedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := batchRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("abrir lote %s: %w", b.Key(), err)
	}
	return b, nil
}

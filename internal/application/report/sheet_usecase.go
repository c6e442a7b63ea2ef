// Package report genera las hojas de producción de los lotes en PDF y XLSX.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/production"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
)

// Document fichero listo para descargar.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// SheetUseCase construye la hoja de producción de un lote y la entrega en el formato pedido.
type SheetUseCase struct {
	clubRepo  repository.ClubRepository
	batchRepo repository.BatchRepository
	orderRepo repository.OrderRepository
	renderers map[string]SheetRenderer
	now       func() time.Time
}

// NewSheetUseCase construye el caso de uso con los renderizadores disponibles.
func NewSheetUseCase(
	clubRepo repository.ClubRepository,
	batchRepo repository.BatchRepository,
	orderRepo repository.OrderRepository,
	renderers ...SheetRenderer,
) *SheetUseCase {
	byExt := make(map[string]SheetRenderer, len(renderers))
	for _, r := range renderers {
		byExt[r.Extension()] = r
	}
	return &SheetUseCase{
		clubRepo:  clubRepo,
		batchRepo: batchRepo,
		orderRepo: orderRepo,
		renderers: byExt,
		now:       time.Now,
	}
}

// Sheet devuelve la hoja sin renderizar. Para envíos individuales (batchType individual)
// incluye los pedidos aún no entregados al cliente.
func (uc *SheetUseCase) Sheet(ctx context.Context, clubID, batchType string, number int) (*production.Sheet, error) {
	club, err := uc.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, domain.ErrNotFound
	}

	status := ""
	switch {
	case batchType == entity.BatchTypeIndividual:
		number = 0
	case entity.IsBatchType(batchType):
		b, err := uc.batchRepo.Get(ctx, clubID, batchType, number)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, domain.ErrNotFound
		}
		status = b.Status
	default:
		return nil, fmt.Errorf("%w: tipo de lote %q", domain.ErrInvalidInput, batchType)
	}

	orders, err := uc.orderRepo.ListByBatch(ctx, clubID, batchType, number)
	if err != nil {
		return nil, err
	}
	if batchType == entity.BatchTypeIndividual {
		pending := orders[:0]
		for _, o := range orders {
			if o.Status != entity.StatusDeliveredCustomer {
				pending = append(pending, o)
			}
		}
		orders = pending
	}

	sheet := production.Build(club.Name, entity.BatchKey(batchType, number), orders)
	sheet.ClubCode = club.Code
	sheet.Status = status
	sheet.GeneratedAt = uc.now()
	return &sheet, nil
}

// Download renderiza la hoja en el formato indicado ("pdf" o "xlsx").
func (uc *SheetUseCase) Download(ctx context.Context, clubID, batchType string, number int, format string) (*Document, error) {
	renderer, ok := uc.renderers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}
	sheet, err := uc.Sheet(ctx, clubID, batchType, number)
	if err != nil {
		return nil, err
	}
	body, err := renderer.Render(ctx, *sheet)
	if err != nil {
		return nil, fmt.Errorf("hoja de producción: %w", err)
	}
	return &Document{
		Filename:    fmt.Sprintf("produccion_%s_%s.%s", sheet.ClubCode, sheet.BatchKey, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

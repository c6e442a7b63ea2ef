// Package analytics contiene los casos de uso del libro contable: se recalcula
// en cada petición a partir de los pedidos, sin nada persistido.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/application/usecase"
	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/ledger"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
)

// batchLoadConcurrency límite de consultas de lotes en paralelo en el libro global.
const batchLoadConcurrency = 4

// LedgerUseCase genera los libros global, por club y por lote.
type LedgerUseCase struct {
	clubRepo  repository.ClubRepository
	batchRepo repository.BatchRepository
	orderRepo repository.OrderRepository
	settings  ledger.Settings
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	clubRepo repository.ClubRepository,
	batchRepo repository.BatchRepository,
	orderRepo repository.OrderRepository,
	settings ledger.Settings,
) *LedgerUseCase {
	return &LedgerUseCase{
		clubRepo:  clubRepo,
		batchRepo: batchRepo,
		orderRepo: orderRepo,
		settings:  settings,
		now:       time.Now,
	}
}

// GlobalLedger libro de todos los clubs (o de uno) en un rango de fechas opcional.
//
// Clubs y pedidos se cargan en paralelo; después, los lotes de cada club para
// conocer su estado.
func (uc *LedgerUseCase) GlobalLedger(ctx context.Context, q dto.LedgerQuery) (*dto.GlobalLedgerDTO, error) {
	from, to, err := usecase.ParseDateRange(q.From, q.To)
	if err != nil {
		return nil, err
	}

	var (
		clubs  []*entity.Club
		orders []*entity.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := uc.clubRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("clubs: %w", err)
		}
		clubs = list
		return nil
	})
	g.Go(func() error {
		list, err := uc.orderRepo.List(gctx, repository.OrderFilter{ClubID: q.ClubID, From: from, To: to})
		if err != nil {
			return fmt.Errorf("pedidos: %w", err)
		}
		orders = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if q.ClubID != "" {
		clubs = filterClub(clubs, q.ClubID)
		if len(clubs) == 0 {
			return nil, domain.ErrNotFound
		}
	}
	statuses, err := uc.batchStatuses(ctx, clubs)
	if err != nil {
		return nil, err
	}

	calc := ledger.NewCalculator(uc.settings, clubs)
	names := make(map[string]string, len(clubs))
	for _, c := range clubs {
		names[c.ID] = c.Name
	}

	batchLedgers := calc.ByBatch(orders)
	perClub := make(map[string][]dto.BatchLedgerDTO)
	allBatches := make([]dto.BatchLedgerDTO, 0, len(batchLedgers))
	for _, bl := range batchLedgers {
		d := toBatchLedgerDTO(bl, statuses[bl.BatchRef])
		allBatches = append(allBatches, d)
		perClub[bl.ClubID] = append(perClub[bl.ClubID], d)
	}

	clubLedgers := calc.ByClub(orders)
	clubDTOs := make([]dto.ClubLedgerDTO, 0, len(clubLedgers))
	for _, cl := range clubLedgers {
		clubDTOs = append(clubDTOs, dto.ClubLedgerDTO{
			ClubID:   cl.ClubID,
			ClubName: names[cl.ClubID],
			Totals:   toLedgerDTO(cl.Ledger),
			Batches:  perClub[cl.ClubID],
		})
	}

	byStatus := make(map[string]int)
	openIncidents := 0
	for _, o := range orders {
		byStatus[o.Status]++
		openIncidents += o.OpenIncidents()
	}

	return &dto.GlobalLedgerDTO{
		Totals:         toLedgerDTO(calc.Aggregate(orders)),
		Clubs:          clubDTOs,
		Batches:        allBatches,
		OrdersByStatus: byStatus,
		OpenIncidents:  openIncidents,
		GeneratedAt:    uc.now(),
	}, nil
}

// batchStatuses carga los lotes de cada club con concurrencia limitada.
func (uc *LedgerUseCase) batchStatuses(ctx context.Context, clubs []*entity.Club) (map[ledger.BatchRef]string, error) {
	results := make([][]*entity.Batch, len(clubs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchLoadConcurrency)
	for i, c := range clubs {
		g.Go(func() error {
			list, err := uc.batchRepo.ListByClub(gctx, c.ID)
			if err != nil {
				return fmt.Errorf("lotes de %s: %w", c.Code, err)
			}
			results[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[ledger.BatchRef]string)
	for _, list := range results {
		for _, b := range list {
			out[ledger.BatchRef{ClubID: b.ClubID, Type: b.Type, Number: b.Number}] = b.Status
		}
	}
	return out, nil
}

// ClubLedger libro de un club con todos sus lotes, incluidos los que aún no tienen pedidos.
func (uc *LedgerUseCase) ClubLedger(ctx context.Context, clubID string) (*dto.ClubLedgerDTO, error) {
	club, batches, orders, err := uc.loadClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	calc := ledger.NewCalculator(uc.settings, []*entity.Club{club})

	batchLedgers := calc.ByBatch(orders)
	known := make(map[ledger.BatchRef]bool, len(batchLedgers))
	for _, bl := range batchLedgers {
		known[bl.BatchRef] = true
	}
	statuses := make(map[ledger.BatchRef]string, len(batches))
	for _, b := range batches {
		ref := ledger.BatchRef{ClubID: b.ClubID, Type: b.Type, Number: b.Number}
		statuses[ref] = b.Status
		if !known[ref] {
			batchLedgers = append(batchLedgers, ledger.BatchLedger{BatchRef: ref})
		}
	}
	ledger.SortBatches(batchLedgers)

	out := &dto.ClubLedgerDTO{
		ClubID:   club.ID,
		ClubName: club.Name,
		Totals:   toLedgerDTO(calc.Aggregate(orders)),
		Batches:  make([]dto.BatchLedgerDTO, 0, len(batchLedgers)),
	}
	for _, bl := range batchLedgers {
		out.Batches = append(out.Batches, toBatchLedgerDTO(bl, statuses[bl.BatchRef]))
	}
	return out, nil
}

// BatchLedger libro de un lote. batchType individual agrupa los envíos individuales del club.
func (uc *LedgerUseCase) BatchLedger(ctx context.Context, clubID, batchType string, number int) (*dto.BatchLedgerDTO, error) {
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
	calc := ledger.NewCalculator(uc.settings, []*entity.Club{club})
	d := toBatchLedgerDTO(ledger.BatchLedger{
		BatchRef: ledger.BatchRef{ClubID: clubID, Type: batchType, Number: number},
		Ledger:   calc.Aggregate(orders),
	}, status)
	return &d, nil
}

// ClubCommission vista del portal: ventas y comisión del club por lote, sin costes internos.
// Pedidos y unidades cuentan solo ventas; las reposiciones quedan fuera.
func (uc *LedgerUseCase) ClubCommission(ctx context.Context, clubID string) (*dto.ClubCommissionDTO, error) {
	full, err := uc.ClubLedger(ctx, clubID)
	if err != nil {
		return nil, err
	}
	out := &dto.ClubCommissionDTO{
		ClubID:         full.ClubID,
		Orders:         full.Totals.Orders - full.Totals.Replacements,
		Units:          full.Totals.Units - full.Totals.ReplacementUnits,
		Subtotal:       full.Totals.Subtotal,
		ClubCommission: full.Totals.ClubCommission,
		Batches:        make([]dto.ClubBatchCommissionDTO, 0, len(full.Batches)),
	}
	for _, b := range full.Batches {
		out.Batches = append(out.Batches, dto.ClubBatchCommissionDTO{
			BatchKey:       b.BatchKey,
			Status:         b.Status,
			Orders:         b.Orders - b.Replacements,
			Units:          b.Units - b.ReplacementUnits,
			Subtotal:       b.Subtotal,
			ClubCommission: b.ClubCommission,
		})
	}
	return out, nil
}

func (uc *LedgerUseCase) loadClub(ctx context.Context, clubID string) (*entity.Club, []*entity.Batch, []*entity.Order, error) {
	var (
		club    *entity.Club
		batches []*entity.Batch
		orders  []*entity.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := uc.clubRepo.GetByID(gctx, clubID)
		club = c
		return err
	})
	g.Go(func() error {
		list, err := uc.batchRepo.ListByClub(gctx, clubID)
		batches = list
		return err
	})
	g.Go(func() error {
		list, err := uc.orderRepo.List(gctx, repository.OrderFilter{ClubID: clubID})
		orders = list
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	if club == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	return club, batches, orders, nil
}

func filterClub(clubs []*entity.Club, id string) []*entity.Club {
	for _, c := range clubs {
		if c.ID == id {
			return []*entity.Club{c}
		}
	}
	return nil
}

func toLedgerDTO(l ledger.Ledger) dto.LedgerDTO {
	return dto.LedgerDTO{
		Orders:               l.Orders,
		Replacements:         l.Replacements,
		Units:                l.Units,
		ReplacementUnits:     l.ReplacementUnits,
		Cash:                 l.Cash.Round(2),
		Subtotal:             l.Subtotal.Round(2),
		SupplierCost:         l.SupplierCost.Round(2),
		ReplacementCost:      l.ReplacementCost.Round(2),
		ClubCommission:       l.ClubCommission.Round(2),
		CommercialCommission: l.CommercialCommission.Round(2),
		GatewayFees:          l.GatewayFee.Round(2),
		ShippingCosts:        l.ShippingCost.Round(2),
		NetProfit:            l.NetProfit.Round(2),
	}
}

func toBatchLedgerDTO(bl ledger.BatchLedger, status string) dto.BatchLedgerDTO {
	return dto.BatchLedgerDTO{
		ClubID:      bl.ClubID,
		BatchType:   bl.Type,
		BatchNumber: bl.Number,
		BatchKey:    entity.BatchKey(bl.Type, bl.Number),
		Status:      status,
		LedgerDTO:   toLedgerDTO(bl.Ledger),
	}
}

package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clubmerch-api/internal/application/batch"
	"github.com/jhoicas/clubmerch-api/internal/application/dto"
	"github.com/jhoicas/clubmerch-api/internal/application/ports"
	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
	"github.com/jhoicas/clubmerch-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// OrderUseCase alta de pedidos desde la tienda y consulta/edición desde el panel.
type OrderUseCase struct {
	txRunner  ports.TxRunner
	orderRepo repository.OrderRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner ports.TxRunner, orderRepo repository.OrderRepository, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, log: log.Component("orders"), now: time.Now}
}

// PlaceStorefrontOrder registra un pedido de la tienda pública. Las líneas entran con coste
// cero y la respuesta no lo incluye.
func (uc *OrderUseCase) PlaceStorefrontOrder(ctx context.Context, clubCode string, in dto.StorefrontOrderRequest) (*dto.OrderResponse, error) {
	o, err := uc.create(ctx, clubCode, in.CreateOrder())
	if err != nil {
		return nil, err
	}
	return dto.FromOrderForClub(o), nil
}

// CreateOrder registra un pedido con costes de proveedor del club clubCode. El pedido entra
// en el lote global activo o, si se pide, en envío individual. GlobalID = CODE-000123.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, clubCode string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	o, err := uc.create(ctx, clubCode, in)
	if err != nil {
		return nil, err
	}
	return dto.FromOrder(o), nil
}

func (uc *OrderUseCase) create(ctx context.Context, clubCode string, in dto.CreateOrderRequest) (*entity.Order, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, fmt.Errorf("%w: el nombre del cliente es obligatorio", domain.ErrInvalidInput)
	}
	if !validPayment(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	if in.ShippingFee.IsNegative() {
		return nil, fmt.Errorf("%w: gastos de envío negativos", domain.ErrInvalidInput)
	}
	items, err := toItems(in.Items)
	if err != nil {
		return nil, err
	}

	var out *entity.Order
	err = uc.txRunner.Run(ctx, func(clubRepo repository.ClubRepository, batchRepo repository.BatchRepository, orderRepo repository.OrderRepository) error {
		club, err := clubRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(clubCode)))
		if err != nil {
			return err
		}
		if club == nil {
			return fmt.Errorf("%w: club %s", domain.ErrNotFound, clubCode)
		}
		seq, err := clubRepo.NextOrderSeq(ctx, club.ID)
		if err != nil {
			return err
		}
		now := uc.now()
		o := &entity.Order{
			ID:            uuid.New().String(),
			GlobalID:      fmt.Sprintf("%s-%06d", club.Code, seq),
			ClubID:        club.ID,
			CustomerName:  strings.TrimSpace(in.CustomerName),
			CustomerEmail: strings.TrimSpace(in.CustomerEmail),
			CustomerPhone: strings.TrimSpace(in.CustomerPhone),
			Items:         items,
			ShippingFee:   in.ShippingFee,
			PaymentMethod: in.PaymentMethod,
			Status:        entity.StatusCollecting,
			Notes:         in.Notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		o.Total = o.Subtotal().Add(o.ShippingFee)
		if in.IndividualShipping {
			o.BatchType = entity.BatchTypeIndividual
		} else {
			active, err := batch.EnsureActive(ctx, batchRepo, club.ID, entity.BatchTypeGlobal, now)
			if err != nil {
				return err
			}
			o.BatchType, o.BatchNumber = active.Type, active.Number
		}
		if err := orderRepo.Create(ctx, o); err != nil {
			return fmt.Errorf("crear pedido: %w", err)
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order", out.GlobalID).
		Str("batch", out.BatchKey()).
		Str("total", out.Total.StringFixed(2)).
		Msg("pedido registrado")
	return out, nil
}

// GetByID obtiene un pedido. domain.ErrNotFound si no existe.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromOrder(o), nil
}

// List lista pedidos con filtros y paginación, del más reciente al más antiguo.
func (uc *OrderUseCase) List(ctx context.Context, q dto.OrderListQuery) (*dto.OrderListResponse, error) {
	return uc.list(ctx, q, dto.FromOrder)
}

// ListForClub listado del portal: siempre del club clubID y sin costes de proveedor.
func (uc *OrderUseCase) ListForClub(ctx context.Context, clubID string, q dto.OrderListQuery) (*dto.OrderListResponse, error) {
	q.ClubID = clubID
	return uc.list(ctx, q, dto.FromOrderForClub)
}

func (uc *OrderUseCase) list(ctx context.Context, q dto.OrderListQuery, toDTO func(*entity.Order) *dto.OrderResponse) (*dto.OrderListResponse, error) {
	q.DefaultPage()
	filter, err := OrderFilterFromQuery(q)
	if err != nil {
		return nil, err
	}
	filter.Limit, filter.Offset = q.Limit, q.Offset
	list, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toDTO(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// OrderFilterFromQuery traduce los filtros de la query string (sin paginación).
func OrderFilterFromQuery(q dto.OrderListQuery) (repository.OrderFilter, error) {
	f := repository.OrderFilter{ClubID: q.ClubID, Status: q.Status}
	if q.BatchKey != "" {
		t, n, err := entity.ParseBatchKey(q.BatchKey)
		if err != nil {
			return f, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		f.BatchType, f.BatchNumber = t, &n
	}
	if q.Replacement != "" {
		b, err := strconv.ParseBool(q.Replacement)
		if err != nil {
			return f, fmt.Errorf("%w: replacement=%q", domain.ErrInvalidInput, q.Replacement)
		}
		f.IsReplacement = &b
	}
	var err error
	if f.From, f.To, err = ParseDateRange(q.From, q.To); err != nil {
		return f, err
	}
	return f, nil
}

// ParseDateRange interpreta from/to (YYYY-MM-DD). to es inclusivo: se devuelve el final del día.
func ParseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var f, t *time.Time
	if from != "" {
		d, err := time.Parse(dateLayout, from)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: fecha from %q", domain.ErrInvalidInput, from)
		}
		f = &d
	}
	if to != "" {
		d, err := time.Parse(dateLayout, to)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: fecha to %q", domain.ErrInvalidInput, to)
		}
		end := d.Add(24*time.Hour - time.Nanosecond)
		t = &end
	}
	if f != nil && t != nil && t.Before(*f) {
		return nil, nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	return f, t, nil
}

// Update edita datos del cliente y notas. Líneas y gastos de envío solo cambian mientras el
// pedido está en recopilando; el total se recalcula salvo en reposiciones.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var out *entity.Order
	err := uc.txRunner.Run(ctx, func(_ repository.ClubRepository, _ repository.BatchRepository, orderRepo repository.OrderRepository) error {
		o, err := orderRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Status == entity.StatusCancelled {
			return fmt.Errorf("%w: el pedido %s está cancelado", domain.ErrConflict, o.GlobalID)
		}
		if in.CustomerName != nil {
			name := strings.TrimSpace(*in.CustomerName)
			if name == "" {
				return fmt.Errorf("%w: el nombre del cliente es obligatorio", domain.ErrInvalidInput)
			}
			o.CustomerName = name
		}
		if in.CustomerEmail != nil {
			o.CustomerEmail = strings.TrimSpace(*in.CustomerEmail)
		}
		if in.CustomerPhone != nil {
			o.CustomerPhone = strings.TrimSpace(*in.CustomerPhone)
		}
		if in.Notes != nil {
			o.Notes = *in.Notes
		}
		if in.ShippingFee != nil {
			if o.Status != entity.StatusCollecting {
				return fmt.Errorf("%w: el envío solo se edita en recopilando (pedido %s)", domain.ErrConflict, o.Status)
			}
			if in.ShippingFee.IsNegative() {
				return fmt.Errorf("%w: gastos de envío negativos", domain.ErrInvalidInput)
			}
			o.ShippingFee = *in.ShippingFee
		}
		if in.Items != nil {
			if o.Status != entity.StatusCollecting {
				return fmt.Errorf("%w: las líneas solo se editan en recopilando (pedido %s)", domain.ErrConflict, o.Status)
			}
			if len(o.Incidents) > 0 {
				return fmt.Errorf("%w: el pedido tiene incidencias que referencian sus líneas", domain.ErrConflict)
			}
			items, err := toItems(in.Items)
			if err != nil {
				return err
			}
			if o.IsReplacement {
				for i := range items {
					items[i].UnitPrice = decimal.Zero
				}
			}
			o.Items = items
		}
		if !o.IsReplacement {
			o.Total = o.Subtotal().Add(o.ShippingFee)
		}
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
	return dto.FromOrder(out), nil
}

func validPayment(m string) bool {
	switch m {
	case entity.PaymentCard, entity.PaymentTransfer, entity.PaymentBizum, entity.PaymentCash:
		return true
	}
	return false
}

func toItems(in []dto.OrderItemRequest) ([]entity.OrderItem, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: el pedido no tiene líneas", domain.ErrInvalidInput)
	}
	items := make([]entity.OrderItem, 0, len(in))
	for i, it := range in {
		if strings.TrimSpace(it.Name) == "" {
			return nil, fmt.Errorf("%w: línea %d sin producto", domain.ErrInvalidInput, i)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea %d con cantidad %d", domain.ErrInvalidInput, i, it.Quantity)
		}
		if it.UnitPrice.IsNegative() || it.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d con importes negativos", domain.ErrInvalidInput, i)
		}
		items = append(items, entity.OrderItem{
			ProductID:             it.ProductID,
			Name:                  strings.TrimSpace(it.Name),
			Size:                  strings.ToUpper(strings.TrimSpace(it.Size)),
			PersonalizationName:   strings.TrimSpace(it.PersonalizationName),
			PersonalizationNumber: strings.TrimSpace(it.PersonalizationNumber),
			Quantity:              it.Quantity,
			UnitPrice:             it.UnitPrice,
			UnitCost:              it.UnitCost,
		})
	}
	return items, nil
}

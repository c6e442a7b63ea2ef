package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria.
type OrderRepo struct{ s *Store }

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[order.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[id]; ok {
		return cloneOrder(o), nil
	}
	return nil, nil
}

func (r *OrderRepo) Update(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[order.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *OrderRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.orders, id)
	return nil
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Order
	for _, o := range r.s.orders {
		if matches(o, f) {
			list = append(list, cloneOrder(o))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].GlobalID > list[j].GlobalID
	})
	if f.Offset > 0 {
		if f.Offset >= len(list) {
			return nil, nil
		}
		list = list[f.Offset:]
	}
	if f.Limit > 0 && len(list) > f.Limit {
		list = list[:f.Limit]
	}
	return list, nil
}

func matches(o *entity.Order, f repository.OrderFilter) bool {
	switch {
	case f.ClubID != "" && o.ClubID != f.ClubID:
		return false
	case f.Status != "" && o.Status != f.Status:
		return false
	case f.BatchType != "" && o.BatchType != f.BatchType:
		return false
	case f.BatchNumber != nil && o.BatchNumber != *f.BatchNumber:
		return false
	case f.IsReplacement != nil && o.IsReplacement != *f.IsReplacement:
		return false
	case f.From != nil && o.CreatedAt.Before(*f.From):
		return false
	case f.To != nil && o.CreatedAt.After(*f.To):
		return false
	}
	return true
}

func (r *OrderRepo) ListByBatch(ctx context.Context, clubID, batchType string, number int) ([]*entity.Order, error) {
	list, err := r.List(ctx, repository.OrderFilter{ClubID: clubID, BatchType: batchType, BatchNumber: &number})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].GlobalID < list[j].GlobalID })
	return list, nil
}

func (r *OrderRepo) CountByBatch(_ context.Context, clubID, batchType string, number int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, o := range r.s.orders {
		if o.ClubID == clubID && o.InBatch(batchType, number) && o.Status != entity.StatusCancelled {
			n++
		}
	}
	return n, nil
}

func (r *OrderRepo) UpdateStatusByBatch(_ context.Context, clubID, batchType string, number int, status string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, o := range r.s.orders {
		if o.ClubID == clubID && o.InBatch(batchType, number) && o.Status != entity.StatusCancelled {
			o.Status = status
			n++
		}
	}
	return n, nil
}

func (r *OrderRepo) DeleteByClub(_ context.Context, clubID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, o := range r.s.orders {
		if o.ClubID == clubID {
			delete(r.s.orders, id)
		}
	}
	return nil
}

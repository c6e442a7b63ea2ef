package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo lotes en memoria. Reproduce los índices únicos de PostgreSQL:
// (club, tipo, número) y un único lote recopilando por (club, tipo).
type BatchRepo struct{ s *Store }

func (r *BatchRepo) Create(_ context.Context, batch *entity.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.batches {
		if b.ClubID != batch.ClubID || b.Type != batch.Type {
			continue
		}
		if b.Number == batch.Number {
			return fmt.Errorf("lote %s: %w", batch.Key(), domain.ErrDuplicate)
		}
		if b.Status == entity.StatusCollecting && batch.Status == entity.StatusCollecting {
			return fmt.Errorf("ya existe un lote activo %s: %w", b.Key(), domain.ErrDuplicate)
		}
	}
	r.s.batches[batch.ID] = cloneBatch(batch)
	return nil
}

func (r *BatchRepo) Get(_ context.Context, clubID, batchType string, number int) (*entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.batches {
		if b.ClubID == clubID && b.Type == batchType && b.Number == number {
			return cloneBatch(b), nil
		}
	}
	return nil, nil
}

func (r *BatchRepo) GetActive(_ context.Context, clubID, batchType string) (*entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.batches {
		if b.ClubID == clubID && b.Type == batchType && b.Status == entity.StatusCollecting {
			return cloneBatch(b), nil
		}
	}
	return nil, nil
}

func (r *BatchRepo) MaxNumber(_ context.Context, clubID, batchType string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	max := 0
	for _, b := range r.s.batches {
		if b.ClubID == clubID && b.Type == batchType && b.Number > max {
			max = b.Number
		}
	}
	return max, nil
}

func (r *BatchRepo) ListByClub(_ context.Context, clubID string) ([]*entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Batch
	for _, b := range r.s.batches {
		if b.ClubID == clubID {
			list = append(list, cloneBatch(b))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Type != list[j].Type {
			return list[i].Type > list[j].Type // global antes que error
		}
		return list[i].Number > list[j].Number
	})
	return list, nil
}

func (r *BatchRepo) Update(_ context.Context, batch *entity.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.batches[batch.ID]; !ok {
		return domain.ErrNotFound
	}
	if batch.Status == entity.StatusCollecting {
		for id, b := range r.s.batches {
			if id != batch.ID && b.ClubID == batch.ClubID && b.Type == batch.Type && b.Status == entity.StatusCollecting {
				return fmt.Errorf("ya existe un lote activo %s: %w", b.Key(), domain.ErrDuplicate)
			}
		}
	}
	r.s.batches[batch.ID] = cloneBatch(batch)
	return nil
}

func (r *BatchRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.batches, id)
	return nil
}

func (r *BatchRepo) DeleteByClub(_ context.Context, clubID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, b := range r.s.batches {
		if b.ClubID == clubID {
			delete(r.s.batches, id)
		}
	}
	return nil
}

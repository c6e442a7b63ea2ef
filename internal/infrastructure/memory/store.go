// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con STORAGE_DRIVER=memory (demo local sin PostgreSQL) y como doble en los tests
// de casos de uso. Las transacciones se serializan y se revierten restaurando una copia.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/clubmerch-api/internal/application/ports"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

// Store datos compartidos por los tres repositorios.
type Store struct {
	txMu sync.Mutex // una transacción a la vez
	mu   sync.Mutex

	clubs   map[string]*entity.Club
	batches map[string]*entity.Batch
	orders  map[string]*entity.Order

	clubRepo  *ClubRepo
	batchRepo *BatchRepo
	orderRepo *OrderRepo
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	s := &Store{
		clubs:   make(map[string]*entity.Club),
		batches: make(map[string]*entity.Batch),
		orders:  make(map[string]*entity.Order),
	}
	s.clubRepo = &ClubRepo{s: s}
	s.batchRepo = &BatchRepo{s: s}
	s.orderRepo = &OrderRepo{s: s}
	return s
}

// Clubs devuelve el repositorio de clubs.
func (s *Store) Clubs() *ClubRepo { return s.clubRepo }

// Batches devuelve el repositorio de lotes.
func (s *Store) Batches() *BatchRepo { return s.batchRepo }

// Orders devuelve el repositorio de pedidos.
func (s *Store) Orders() *OrderRepo { return s.orderRepo }

// Run ejecuta fn en exclusión mutua; si devuelve error se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(
	clubRepo repository.ClubRepository,
	batchRepo repository.BatchRepository,
	orderRepo repository.OrderRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snap := s.snapshot()
	if err := fn(s.clubRepo, s.batchRepo, s.orderRepo); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	clubs   map[string]*entity.Club
	batches map[string]*entity.Batch
	orders  map[string]*entity.Order
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		clubs:   make(map[string]*entity.Club, len(s.clubs)),
		batches: make(map[string]*entity.Batch, len(s.batches)),
		orders:  make(map[string]*entity.Order, len(s.orders)),
	}
	for k, v := range s.clubs {
		snap.clubs[k] = cloneClub(v)
	}
	for k, v := range s.batches {
		snap.batches[k] = cloneBatch(v)
	}
	for k, v := range s.orders {
		snap.orders[k] = cloneOrder(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clubs, s.batches, s.orders = snap.clubs, snap.batches, snap.orders
}

func cloneClub(c *entity.Club) *entity.Club {
	cp := *c
	return &cp
}

func cloneBatch(b *entity.Batch) *entity.Batch {
	cp := *b
	if b.ProductionAt != nil {
		t := *b.ProductionAt
		cp.ProductionAt = &t
	}
	if b.DeliveredAt != nil {
		t := *b.DeliveredAt
		cp.DeliveredAt = &t
	}
	return &cp
}

func cloneOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	cp.Incidents = make([]entity.Incident, len(o.Incidents))
	for i, inc := range o.Incidents {
		inc.Items = append([]entity.IncidentItem(nil), inc.Items...)
		cp.Incidents[i] = inc
	}
	return &cp
}

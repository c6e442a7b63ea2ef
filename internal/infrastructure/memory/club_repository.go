package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
)

var _ repository.ClubRepository = (*ClubRepo)(nil)

// ClubRepo clubs en memoria.
type ClubRepo struct{ s *Store }

func (r *ClubRepo) Create(_ context.Context, club *entity.Club) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.clubs {
		if c.Code == club.Code {
			return fmt.Errorf("club code %q: %w", club.Code, domain.ErrDuplicate)
		}
	}
	r.s.clubs[club.ID] = cloneClub(club)
	return nil
}

func (r *ClubRepo) GetByID(_ context.Context, id string) (*entity.Club, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.clubs[id]; ok {
		return cloneClub(c), nil
	}
	return nil, nil
}

func (r *ClubRepo) GetByCode(_ context.Context, code string) (*entity.Club, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.clubs {
		if c.Code == code {
			return cloneClub(c), nil
		}
	}
	return nil, nil
}

func (r *ClubRepo) List(_ context.Context) ([]*entity.Club, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Club, 0, len(r.s.clubs))
	for _, c := range r.s.clubs {
		list = append(list, cloneClub(c))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *ClubRepo) Update(_ context.Context, club *entity.Club) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clubs[club.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.clubs[club.ID] = cloneClub(club)
	return nil
}

func (r *ClubRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.clubs, id)
	return nil
}

func (r *ClubRepo) NextOrderSeq(_ context.Context, clubID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clubs[clubID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	c.OrderSeq++
	return c.OrderSeq, nil
}

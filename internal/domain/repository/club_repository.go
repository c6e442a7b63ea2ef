package repository

import (
	"context"

	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
)

// ClubRepository define el puerto de persistencia para Club (DIP).
// GetByID y GetByCode devuelven (nil, nil) si no existe.
type ClubRepository interface {
	Create(ctx context.Context, club *entity.Club) error
	GetByID(ctx context.Context, id string) (*entity.Club, error)
	GetByCode(ctx context.Context, code string) (*entity.Club, error)
	List(ctx context.Context) ([]*entity.Club, error)
	Update(ctx context.Context, club *entity.Club) error
	Delete(ctx context.Context, id string) error
	// NextOrderSeq incrementa y devuelve el consecutivo de pedidos del club.
	NextOrderSeq(ctx context.Context, clubID string) (int, error)
}

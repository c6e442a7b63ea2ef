package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
)

var _ repository.ClubRepository = (*ClubRepo)(nil)

// ClubRepo implementación del puerto ClubRepository sobre PostgreSQL (usable con pool o tx).
type ClubRepo struct {
	q Querier
}

// NewClubRepository construye el adaptador de persistencia para clubs. Pasar pool o tx (Querier).
func NewClubRepository(q Querier) *ClubRepo {
	return &ClubRepo{q: q}
}

const clubColumns = `id, name, code, commission_pct, contact_email, password_hash, order_seq, created_at, updated_at`

func scanClub(row pgx.Row) (*entity.Club, error) {
	var c entity.Club
	var email, hash *string
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.CommissionPct, &email, &hash, &c.OrderSeq, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.ContactEmail = derefString(email)
	c.PasswordHash = derefString(hash)
	return &c, nil
}

// Create persiste un nuevo club. Código repetido: domain.ErrDuplicate.
func (r *ClubRepo) Create(ctx context.Context, club *entity.Club) error {
	query := `
		INSERT INTO clubs (` + clubColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		club.ID, club.Name, club.Code, club.CommissionPct,
		nullIfEmpty(club.ContactEmail), nullIfEmpty(club.PasswordHash), club.OrderSeq,
		club.CreatedAt, club.UpdatedAt,
	)
	return wrapWrite("insert club", err)
}

// GetByID obtiene un club por ID.
func (r *ClubRepo) GetByID(ctx context.Context, id string) (*entity.Club, error) {
	c, err := scanClub(r.q.QueryRow(ctx, `SELECT `+clubColumns+` FROM clubs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get club: %w", err)
	}
	return c, nil
}

// GetByCode obtiene un club por su código de tienda.
func (r *ClubRepo) GetByCode(ctx context.Context, code string) (*entity.Club, error) {
	c, err := scanClub(r.q.QueryRow(ctx, `SELECT `+clubColumns+` FROM clubs WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get club by code: %w", err)
	}
	return c, nil
}

// List lista los clubs por nombre.
func (r *ClubRepo) List(ctx context.Context) ([]*entity.Club, error) {
	rows, err := r.q.Query(ctx, `SELECT `+clubColumns+` FROM clubs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Club
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("scan club: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza nombre, comisión, email y contraseña. El código y el consecutivo no cambian.
func (r *ClubRepo) Update(ctx context.Context, club *entity.Club) error {
	query := `
		UPDATE clubs SET name = $2, commission_pct = $3, contact_email = $4, password_hash = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		club.ID, club.Name, club.CommissionPct,
		nullIfEmpty(club.ContactEmail), nullIfEmpty(club.PasswordHash), club.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("update club", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un club por ID.
func (r *ClubRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM clubs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete club: %w", err)
	}
	return nil
}

// NextOrderSeq incrementa el consecutivo de forma atómica (la fila queda bloqueada hasta el commit).
func (r *ClubRepo) NextOrderSeq(ctx context.Context, clubID string) (int, error) {
	var seq int
	err := r.q.QueryRow(ctx,
		`UPDATE clubs SET order_seq = order_seq + 1 WHERE id = $1 RETURNING order_seq`, clubID,
	).Scan(&seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("next order seq: %w", err)
	}
	return seq, nil
}

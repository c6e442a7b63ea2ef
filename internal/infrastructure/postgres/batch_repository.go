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

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
// El índice único parcial batches_one_collecting garantiza un solo lote en recopilando
// por club y tipo aunque dos transacciones compitan.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, club_id, type, number, status, opened_at, production_at, delivered_at, created_at, updated_at`

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(&b.ID, &b.ClubID, &b.Type, &b.Number, &b.Status,
		&b.OpenedAt, &b.ProductionAt, &b.DeliveredAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BatchRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// Create persiste un lote. Número repetido o segundo lote activo: domain.ErrDuplicate.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.ClubID, b.Type, b.Number, b.Status,
		b.OpenedAt, b.ProductionAt, b.DeliveredAt, b.CreatedAt, b.UpdatedAt,
	)
	return wrapWrite("insert batch", err)
}

// Get obtiene un lote por club, tipo y número.
func (r *BatchRepo) Get(ctx context.Context, clubID, batchType string, number int) (*entity.Batch, error) {
	return r.getOne(ctx, "get batch",
		`SELECT `+batchColumns+` FROM batches WHERE club_id = $1 AND type = $2 AND number = $3`,
		clubID, batchType, number)
}

// GetActive obtiene el lote en recopilando y bloquea la fila (SELECT FOR UPDATE).
func (r *BatchRepo) GetActive(ctx context.Context, clubID, batchType string) (*entity.Batch, error) {
	return r.getOne(ctx, "get active batch",
		`SELECT `+batchColumns+` FROM batches
		 WHERE club_id = $1 AND type = $2 AND status = $3
		 FOR UPDATE`,
		clubID, batchType, entity.StatusCollecting)
}

// MaxNumber devuelve el mayor número usado por el tipo (0 si no hay lotes).
func (r *BatchRepo) MaxNumber(ctx context.Context, clubID, batchType string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(number), 0) FROM batches WHERE club_id = $1 AND type = $2`,
		clubID, batchType,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("max batch number: %w", err)
	}
	return n, nil
}

// ListByClub lista los lotes del club: globales primero y los más recientes arriba.
func (r *BatchRepo) ListByClub(ctx context.Context, clubID string) ([]*entity.Batch, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+batchColumns+` FROM batches WHERE club_id = $1 ORDER BY type DESC, number DESC`,
		clubID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Update guarda estado y marcas de tiempo.
func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	query := `
		UPDATE batches SET status = $2, production_at = $3, delivered_at = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, b.ID, b.Status, b.ProductionAt, b.DeliveredAt, b.UpdatedAt)
	if err != nil {
		return wrapWrite("update batch", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un lote por ID.
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// DeleteByClub elimina todos los lotes del club.
func (r *BatchRepo) DeleteByClub(ctx context.Context, clubID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM batches WHERE club_id = $1`, clubID); err != nil {
		return fmt.Errorf("delete club batches: %w", err)
	}
	return nil
}

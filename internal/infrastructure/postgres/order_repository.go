package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clubmerch-api/internal/domain"
	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
	"github.com/jhoicas/clubmerch-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas y las incidencias se guardan como JSONB en la propia fila del pedido.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, global_id, club_id, customer_name, customer_email, customer_phone,
	items, shipping_fee, total, payment_method, status, batch_type, batch_number,
	is_replacement, original_order_id, charged_amount, incidents, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o                      entity.Order
		email, phone, original *string
		notes                  *string
		items, incidents       []byte
	)
	err := row.Scan(&o.ID, &o.GlobalID, &o.ClubID, &o.CustomerName, &email, &phone,
		&items, &o.ShippingFee, &o.Total, &o.PaymentMethod, &o.Status, &o.BatchType, &o.BatchNumber,
		&o.IsReplacement, &original, &o.ChargedAmount, &incidents, &notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.CustomerEmail = derefString(email)
	o.CustomerPhone = derefString(phone)
	o.OriginalOrderID = derefString(original)
	o.Notes = derefString(notes)
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("items del pedido %s: %w", o.ID, err)
	}
	if len(incidents) > 0 {
		if err := json.Unmarshal(incidents, &o.Incidents); err != nil {
			return nil, fmt.Errorf("incidencias del pedido %s: %w", o.ID, err)
		}
	}
	return &o, nil
}

func marshalDocs(o *entity.Order) (items, incidents []byte, err error) {
	if items, err = json.Marshal(nonNil(o.Items)); err != nil {
		return nil, nil, fmt.Errorf("items: %w", err)
	}
	if incidents, err = json.Marshal(nonNil(o.Incidents)); err != nil {
		return nil, nil, fmt.Errorf("incidents: %w", err)
	}
	return items, incidents, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Create persiste un pedido. GlobalID repetido: domain.ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	items, incidents, err := marshalDocs(o)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.GlobalID, o.ClubID, o.CustomerName, nullIfEmpty(o.CustomerEmail), nullIfEmpty(o.CustomerPhone),
		items, o.ShippingFee, o.Total, o.PaymentMethod, o.Status, o.BatchType, o.BatchNumber,
		o.IsReplacement, nullIfEmpty(o.OriginalOrderID), o.ChargedAmount, incidents, nullIfEmpty(o.Notes),
		o.CreatedAt, o.UpdatedAt,
	)
	return wrapWrite("insert order", err)
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Update reescribe los campos editables, el estado, el lote y los documentos JSONB.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	items, incidents, err := marshalDocs(o)
	if err != nil {
		return err
	}
	query := `
		UPDATE orders SET
			customer_name = $2, customer_email = $3, customer_phone = $4,
			items = $5, shipping_fee = $6, total = $7, status = $8,
			batch_type = $9, batch_number = $10, charged_amount = $11,
			incidents = $12, notes = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerName, nullIfEmpty(o.CustomerEmail), nullIfEmpty(o.CustomerPhone),
		items, o.ShippingFee, o.Total, o.Status,
		o.BatchType, o.BatchNumber, o.ChargedAmount,
		incidents, nullIfEmpty(o.Notes), o.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("update order", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un pedido por ID.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// List aplica el filtro; más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	where, args := orderWhere(f)
	query := `SELECT ` + orderColumns + ` FROM orders` + where + ` ORDER BY created_at DESC, global_id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return r.list(ctx, "list orders", query, args...)
}

func orderWhere(f repository.OrderFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ClubID != "" {
		add("club_id = $%d", f.ClubID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.BatchType != "" {
		add("batch_type = $%d", f.BatchType)
	}
	if f.BatchNumber != nil {
		add("batch_number = $%d", *f.BatchNumber)
	}
	if f.IsReplacement != nil {
		add("is_replacement = $%d", *f.IsReplacement)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListByBatch lista los pedidos del lote (incluidos cancelados) por GlobalID.
func (r *OrderRepo) ListByBatch(ctx context.Context, clubID, batchType string, number int) ([]*entity.Order, error) {
	return r.list(ctx, "list batch orders",
		`SELECT `+orderColumns+` FROM orders
		 WHERE club_id = $1 AND batch_type = $2 AND batch_number = $3
		 ORDER BY global_id`,
		clubID, batchType, number)
}

func (r *OrderRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// CountByBatch cuenta los pedidos no cancelados del lote.
func (r *OrderRepo) CountByBatch(ctx context.Context, clubID, batchType string, number int) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders
		 WHERE club_id = $1 AND batch_type = $2 AND batch_number = $3 AND status <> $4`,
		clubID, batchType, number, entity.StatusCancelled,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count batch orders: %w", err)
	}
	return n, nil
}

// UpdateStatusByBatch mueve todos los pedidos no cancelados del lote al estado indicado.
func (r *OrderRepo) UpdateStatusByBatch(ctx context.Context, clubID, batchType string, number int, status string) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $5, updated_at = now()
		 WHERE club_id = $1 AND batch_type = $2 AND batch_number = $3 AND status <> $4`,
		clubID, batchType, number, entity.StatusCancelled, status,
	)
	if err != nil {
		return 0, fmt.Errorf("update batch orders: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteByClub elimina todos los pedidos del club.
func (r *OrderRepo) DeleteByClub(ctx context.Context, clubID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE club_id = $1`, clubID); err != nil {
		return fmt.Errorf("delete club orders: %w", err)
	}
	return nil
}

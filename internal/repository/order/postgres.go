package order

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const orderColumns = `id::text, session_id, status, email, phone, shipping_address, payment_method, subtotal_cents, shipping_cents, tax_cents, total_cents, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
INSERT INTO orders (session_id, status, email, phone, shipping_address, payment_method, subtotal_cents, shipping_cents, tax_cents, total_cents)
VALUES ($1, 'pending', $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + orderColumns
	order, err := scanOrder(tx.QueryRow(ctx, insertOrder,
		req.SessionID,
		req.Email,
		req.Phone,
		req.ShippingAddress,
		req.PaymentMethod,
		req.SubtotalCents,
		req.ShippingCents,
		req.TaxCents,
		req.TotalCents,
	))
	if err != nil {
		r.logger.Error("order repo: insert order", zap.String("session_id", req.SessionID), zap.Error(err))
		return nil, err
	}

	for _, item := range req.Items {
		cmd, err := tx.Exec(ctx, `
UPDATE products
SET stock_quantity = stock_quantity - $1, updated_at = now()
WHERE id = $2::uuid AND stock_quantity >= $1
`, item.Quantity, item.ProductID)
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			r.logger.Info("order repo: insufficient stock", zap.String("product_id", item.ProductID), zap.Int("quantity", item.Quantity))
			return nil, fmt.Errorf("product %s: %w", item.ProductID, domain.ErrInsufficientStock)
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, name, quantity, unit_price_cents)
VALUES ($1::uuid, $2::uuid, $3, $4, $5)
`, order.ID, item.ProductID, item.Name, item.Quantity, item.UnitPriceCents); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	order.Items = append([]domain.OrderItem(nil), req.Items...)
	return order, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	order, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1::uuid`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("order repo: get", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	items, err := r.listItems(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

func (r *postgresRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE session_id = $1 ORDER BY created_at DESC`, sessionID)
	if err != nil {
		r.logger.Error("order repo: list", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var (
		orders []domain.Order
		ids    []string
	)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.listItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *postgresRepo) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	order, err := scanOrder(tx.QueryRow(ctx, `
UPDATE orders
SET status = 'cancelled', updated_at = now()
WHERE id = $1::uuid AND status = 'pending'
RETURNING `+orderColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
UPDATE products p
SET stock_quantity = p.stock_quantity + oi.quantity, updated_at = now()
FROM order_items oi
WHERE oi.order_id = $1::uuid AND oi.product_id = p.id
`, id); err != nil {
		return nil, err
	}

	items, err := queryItems(ctx, tx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	items, err := queryItems(ctx, r.pool, orderIDs)
	if err != nil {
		r.logger.Error("order repo: list items", zap.Int("orders", len(orderIDs)), zap.Error(err))
	}
	return items, err
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryItems(ctx context.Context, q querier, orderIDs []string) (map[string][]domain.OrderItem, error) {
	rows, err := q.Query(ctx, `
SELECT order_id::text, product_id::text, name, quantity, unit_price_cents
FROM order_items
WHERE order_id = ANY($1::uuid[])
ORDER BY created_at, id
`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			orderID string
			item    domain.OrderItem
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], item)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	if err := row.Scan(
		&o.ID,
		&o.SessionID,
		&status,
		&o.Email,
		&o.Phone,
		&o.ShippingAddress,
		&o.PaymentMethod,
		&o.SubtotalCents,
		&o.ShippingCents,
		&o.TaxCents,
		&o.TotalCents,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

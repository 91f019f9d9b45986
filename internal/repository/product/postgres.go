package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const productColumns = `id::text, name, COALESCE(description, ''), price_cents, COALESCE(image_url, ''), category_id::text, stock_quantity, rating::float8, is_active, created_at, updated_at`

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

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]domain.Product, error) {
	q, args := buildListQuery(filter)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("product repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("product repo: list rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: list", zap.String("category_id", filter.CategoryID), zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("product repo: get not found", zap.String("id", id))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, price_cents, image_url, category_id, stock_quantity, rating, is_active)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6::uuid, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    image_url = EXCLUDED.image_url,
    category_id = EXCLUDED.category_id,
    stock_quantity = EXCLUDED.stock_quantity,
    rating = EXCLUDED.rating,
    is_active = EXCLUDED.is_active,
    updated_at = now()
RETURNING ` + productColumns
	p, err := scanProduct(r.pool.QueryRow(ctx, q,
		product.ID,
		product.Name,
		product.Description,
		product.PriceCents,
		product.ImageURL,
		product.CategoryID,
		product.StockQuantity,
		product.Rating,
		product.IsActive,
	))
	if err != nil {
		r.logger.Error("product repo: upsert", zap.String("name", product.Name), zap.Error(err))
		return nil, err
	}
	if product.ID != "" && p.ID != product.ID {
		return nil, fmt.Errorf("product repo: id mismatch for name=%s existing_id=%s import_id=%s", product.Name, p.ID, product.ID)
	}
	r.logger.Debug("product repo: upserted", zap.String("id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func buildListQuery(f ListFilter) (string, []interface{}) {
	var (
		where = []string{"is_active = TRUE"}
		args  []interface{}
	)
	add := func(cond string, v interface{}) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.CategoryID != "" {
		add("category_id = $%d::uuid", f.CategoryID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		add("(name ILIKE $%[1]d OR description ILIKE $%[1]d)", "%"+s+"%")
	}
	if f.MinPriceCents != nil {
		add("price_cents >= $%d", *f.MinPriceCents)
	}
	if f.MaxPriceCents != nil {
		add("price_cents <= $%d", *f.MaxPriceCents)
	}

	q := `SELECT ` + productColumns + ` FROM products WHERE ` + strings.Join(where, " AND ") + ` ORDER BY ` + orderClause(f.Sort)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return q, args
}

func orderClause(sort string) string {
	switch sort {
	case SortPriceAsc:
		return "price_cents ASC, name ASC"
	case SortPriceDesc:
		return "price_cents DESC, name ASC"
	case SortRating:
		return "rating DESC, name ASC"
	case SortNewest:
		return "created_at DESC"
	default:
		return "name ASC"
	}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.PriceCents,
		&p.ImageURL,
		&p.CategoryID,
		&p.StockQuantity,
		&p.Rating,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

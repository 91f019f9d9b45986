package category

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `id::text, name, COALESCE(description, ''), parent_id::text, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	return r.query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`)
}

func (r *postgresRepo) ListChildren(ctx context.Context, parentID string) ([]domain.Category, error) {
	return r.query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE parent_id = $1 ORDER BY name ASC`, parentID)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	c, err := scanCategory(r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (id, name, description, parent_id)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, NULLIF($3, ''), $4::uuid)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = COALESCE(EXCLUDED.description, categories.description),
    parent_id = EXCLUDED.parent_id,
    updated_at = now()
RETURNING ` + categoryColumns
	return scanCategory(r.pool.QueryRow(ctx, q, c.ID, c.Name, c.Description, c.ParentID))
}

func (r *postgresRepo) query(ctx context.Context, q string, args ...interface{}) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

package review

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const reviewColumns = `id::text, product_id::text, session_id, rating, COALESCE(comment, ''), created_at, updated_at`

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

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+reviewColumns+`
FROM product_reviews
WHERE product_id = $1::uuid
ORDER BY created_at DESC, id
`, productID)
	if err != nil {
		r.logger.Error("review repo: list", zap.String("product_id", productID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, review domain.Review) (*domain.Review, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created, err := scanReview(tx.QueryRow(ctx, `
INSERT INTO product_reviews (product_id, session_id, rating, comment)
VALUES ($1::uuid, $2, $3, NULLIF($4, ''))
ON CONFLICT (product_id, session_id) DO NOTHING
RETURNING `+reviewColumns,
		review.ProductID, review.SessionID, review.Rating, review.Comment))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error("review repo: insert", zap.String("product_id", review.ProductID), zap.Error(err))
		return nil, err
	}
	if err := refreshRating(ctx, tx, created.ProductID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) Update(ctx context.Context, review domain.Review) (*domain.Review, error) {
	if _, err := uuid.Parse(review.ID); err != nil {
		return nil, domain.ErrNotFound
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	updated, err := scanReview(tx.QueryRow(ctx, `
UPDATE product_reviews
SET rating = $3, comment = NULLIF($4, ''), updated_at = now()
WHERE id = $1::uuid AND session_id = $2
RETURNING `+reviewColumns,
		review.ID, review.SessionID, review.Rating, review.Comment))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := refreshRating(ctx, tx, updated.ProductID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, sessionID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var productID string
	err = tx.QueryRow(ctx, `
DELETE FROM product_reviews
WHERE id = $1::uuid AND session_id = $2
RETURNING product_id::text
`, id, sessionID).Scan(&productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if err := refreshRating(ctx, tx, productID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) HasPurchased(ctx context.Context, sessionID, productID string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (
    SELECT 1
    FROM order_items oi
    JOIN orders o ON o.id = oi.order_id
    WHERE o.session_id = $1 AND oi.product_id = $2::uuid AND o.status <> 'cancelled'
)`, sessionID, productID).Scan(&ok)
	return ok, err
}

// refreshRating sets products.rating to the one-decimal average of its reviews, 0 without any.
func refreshRating(ctx context.Context, tx pgx.Tx, productID string) error {
	_, err := tx.Exec(ctx, `
UPDATE products
SET rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM product_reviews WHERE product_id = $1::uuid), 0),
    updated_at = now()
WHERE id = $1::uuid
`, productID)
	return err
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	if err := row.Scan(&rv.ID, &rv.ProductID, &rv.SessionID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}

package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	reviewrepo "storefront/internal/repository/review"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrNotPurchased  = errors.New("only purchased products can be reviewed")
	ErrCommentLength = fmt.Errorf("comment must be at most %d bytes", maxCommentLength)
)

const maxCommentLength = 2000

// Input is the editable part of a review.
type Input struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (in Input) validate() error {
	if in.Rating < 1 || in.Rating > 5 {
		return ErrInvalidRating
	}
	if len(in.Comment) > maxCommentLength {
		return ErrCommentLength
	}
	return nil
}

type Service struct {
	repo   reviewrepo.Repository
	logger *zap.Logger
}

func New(repo reviewrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// ListByProduct returns the product's reviews newest first.
func (s *Service) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.ListByProduct(ctx, productID)
}

// Create records the session's review of productID. The session must have a
// non-cancelled order containing the product and may review it once.
func (s *Service) Create(ctx context.Context, sessionID, productID string, in Input) (*domain.Review, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrNotFound
	}
	in.Comment = strings.TrimSpace(in.Comment)
	if err := in.validate(); err != nil {
		return nil, err
	}
	bought, err := s.repo.HasPurchased(ctx, sessionID, productID)
	if err != nil {
		return nil, fmt.Errorf("check purchase: %w", err)
	}
	if !bought {
		return nil, ErrNotPurchased
	}
	created, err := s.repo.Create(ctx, domain.Review{
		ProductID: productID,
		SessionID: sessionID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("review: created", zap.String("review_id", created.ID), zap.String("product_id", productID), zap.Int("rating", in.Rating))
	return created, nil
}

func (s *Service) Update(ctx context.Context, sessionID, id string, in Input) (*domain.Review, error) {
	in.Comment = strings.TrimSpace(in.Comment)
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, domain.Review{ID: id, SessionID: sessionID, Rating: in.Rating, Comment: in.Comment})
}

func (s *Service) Delete(ctx context.Context, sessionID, id string) error {
	return s.repo.Delete(ctx, sessionID, id)
}

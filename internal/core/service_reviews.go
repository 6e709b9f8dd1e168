package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/store"
	"github.com/google/uuid"
)

// SaveReview assigns the next comment id for (ProductID, UserName) and stores
// the review. Any CommentID on r is ignored. Ids start at 1 and are never
// handed out twice, even after the review holding one is deleted.
func (s *Service) SaveReview(ctx context.Context, r catalog.Review) (catalog.Review, error) {
	if r.UserName == "" {
		return catalog.Review{}, catalog.InvalidArgumentf("review user name is required")
	}

	var out catalog.Review
	err := s.store.InTx(ctx, func(q store.Queries) error {
		exists, err := q.ProductExists(ctx, r.ProductID)
		if err != nil {
			return err
		}
		if !exists {
			return catalog.NotFoundf("product %s", r.ProductID)
		}

		id, err := q.NextCommentID(ctx, r.ProductID, r.UserName)
		if err != nil {
			return fmt.Errorf("next comment id: %w", err)
		}
		r.CommentID = id

		saved, err := q.InsertReview(ctx, r)
		if err != nil {
			return fmt.Errorf("insert review: %w", err)
		}
		out = saved
		return nil
	})
	if err != nil {
		return catalog.Review{}, err
	}
	return out, nil
}

// GetReview returns the review with key; found is false when there is none.
func (s *Service) GetReview(ctx context.Context, key catalog.ReviewKey) (r catalog.Review, found bool, err error) {
	r, err = s.store.GetReview(ctx, key)
	if errors.Is(err, catalog.ErrNotFound) {
		return catalog.Review{}, false, nil
	}
	if err != nil {
		return catalog.Review{}, false, err
	}
	return r, true, nil
}

// ListReviewsByProduct returns every review of a product.
func (s *Service) ListReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Review, error) {
	return s.store.ListReviewsByProduct(ctx, productID)
}

// ListReviewsByProductAndUser returns one user's reviews of a product in comment id order.
func (s *Service) ListReviewsByProductAndUser(ctx context.Context, productID uuid.UUID, userName string) ([]catalog.Review, error) {
	return s.store.ListReviewsByProductAndUser(ctx, productID, userName)
}

// DeleteReview removes one review. Its comment id is not reused.
func (s *Service) DeleteReview(ctx context.Context, key catalog.ReviewKey) error {
	return s.store.DeleteReview(ctx, key)
}

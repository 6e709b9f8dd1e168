package postgres

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

const reviewColumns = `v.product_id, v.user_name, v.comment_id, v.comment, v.rating, v.created_at`

func scanReview(row scanner) (catalog.Review, error) {
	var r catalog.Review
	err := row.Scan(&r.ProductID, &r.UserName, &r.CommentID, &r.Comment, &r.Rating, &r.CreatedAt)
	return r, err
}

// NextCommentID bumps the (product, user) counter in a single statement. The
// row lock taken by ON CONFLICT serializes concurrent callers, and a fresh
// counter starts above any comment id already stored.
func (s *Store) NextCommentID(ctx context.Context, productID uuid.UUID, userName string) (int, error) {
	var next int
	err := s.db.QueryRow(ctx, `
		INSERT INTO review_sequences (product_id, user_name, last_id)
		VALUES ($1, $2, COALESCE((
			SELECT MAX(comment_id) FROM reviews WHERE product_id = $1 AND user_name = $2
		), 0) + 1)
		ON CONFLICT (product_id, user_name) DO UPDATE SET last_id = review_sequences.last_id + 1
		RETURNING last_id`,
		productID, userName,
	).Scan(&next)
	if err != nil {
		return 0, translate(err, "next comment id")
	}
	return next, nil
}

func (s *Store) InsertReview(ctx context.Context, r catalog.Review) (catalog.Review, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO reviews AS v (product_id, user_name, comment_id, comment, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+reviewColumns,
		r.ProductID, r.UserName, r.CommentID, r.Comment, r.Rating,
	)
	out, err := scanReview(row)
	if err != nil {
		return catalog.Review{}, translate(err, "insert review")
	}
	return out, nil
}

func (s *Store) GetReview(ctx context.Context, key catalog.ReviewKey) (catalog.Review, error) {
	row := s.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews v
		WHERE v.product_id = $1 AND v.user_name = $2 AND v.comment_id = $3`,
		key.ProductID, key.UserName, key.CommentID)
	r, err := scanReview(row)
	if err != nil {
		return catalog.Review{}, translate(err, fmt.Sprintf("review %s/%s/%d", key.ProductID, key.UserName, key.CommentID))
	}
	return r, nil
}

func (s *Store) ListReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Review, error) {
	return collect(ctx, s.db, "list reviews", scanReview,
		`SELECT `+reviewColumns+` FROM reviews v WHERE v.product_id = $1 ORDER BY v.user_name, v.comment_id`, productID)
}

func (s *Store) ListReviewsByProductAndUser(ctx context.Context, productID uuid.UUID, userName string) ([]catalog.Review, error) {
	return collect(ctx, s.db, "list reviews", scanReview,
		`SELECT `+reviewColumns+` FROM reviews v WHERE v.product_id = $1 AND v.user_name = $2 ORDER BY v.comment_id`,
		productID, userName)
}

func (s *Store) DeleteReview(ctx context.Context, key catalog.ReviewKey) error {
	return execOne(ctx, s.db, fmt.Sprintf("review %s/%s/%d", key.ProductID, key.UserName, key.CommentID),
		`DELETE FROM reviews WHERE product_id = $1 AND user_name = $2 AND comment_id = $3`,
		key.ProductID, key.UserName, key.CommentID)
}

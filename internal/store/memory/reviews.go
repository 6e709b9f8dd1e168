package memory

import (
	"context"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

func reviewLess(a, b catalog.Review) bool {
	if a.UserName != b.UserName {
		return a.UserName < b.UserName
	}
	return a.CommentID < b.CommentID
}

// NextCommentID reserves the next id for (productID, userName). The counter
// is seeded from the highest stored comment id the first time it is used.
func (s *Store) NextCommentID(ctx context.Context, productID uuid.UUID, userName string) (int, error) {
	var next int
	err := s.write(ctx, func(d *dataset) error {
		if _, ok := d.products[productID]; !ok {
			return catalog.Constraintf("review references missing product %s", productID)
		}
		key := sequenceKey{productID: productID, userName: userName}
		last, seeded := d.sequences[key]
		if !seeded {
			for k := range d.reviews {
				if k.ProductID == productID && k.UserName == userName && k.CommentID > last {
					last = k.CommentID
				}
			}
		}
		next = last + 1
		d.sequences[key] = next
		return nil
	})
	return next, err
}

func (s *Store) InsertReview(ctx context.Context, r catalog.Review) (catalog.Review, error) {
	err := s.write(ctx, func(d *dataset) error {
		if _, ok := d.products[r.ProductID]; !ok {
			return catalog.Constraintf("review references missing product %s", r.ProductID)
		}
		if _, exists := d.reviews[r.Key()]; exists {
			return catalog.Constraintf("review %s/%s/%d already exists", r.ProductID, r.UserName, r.CommentID)
		}
		if r.Rating != nil {
			rating := *r.Rating
			r.Rating = &rating
		}
		r.CreatedAt = s.now()
		d.reviews[r.Key()] = r
		return nil
	})
	if err != nil {
		return catalog.Review{}, err
	}
	return r, nil
}

func (s *Store) GetReview(ctx context.Context, key catalog.ReviewKey) (catalog.Review, error) {
	var r catalog.Review
	err := s.read(ctx, func(d *dataset) error {
		found, ok := d.reviews[key]
		if !ok {
			return catalog.NotFoundf("review %s/%s/%d", key.ProductID, key.UserName, key.CommentID)
		}
		r = found
		return nil
	})
	return r, err
}

func (s *Store) ListReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Review, error) {
	var out []catalog.Review
	err := s.read(ctx, func(d *dataset) error {
		out = sortedValues(d.reviews, func(r catalog.Review) bool { return r.ProductID == productID }, reviewLess)
		return nil
	})
	return out, err
}

func (s *Store) ListReviewsByProductAndUser(ctx context.Context, productID uuid.UUID, userName string) ([]catalog.Review, error) {
	var out []catalog.Review
	err := s.read(ctx, func(d *dataset) error {
		out = sortedValues(d.reviews, func(r catalog.Review) bool {
			return r.ProductID == productID && r.UserName == userName
		}, reviewLess)
		return nil
	})
	return out, err
}

func (s *Store) DeleteReview(ctx context.Context, key catalog.ReviewKey) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.reviews[key]; !ok {
			return catalog.NotFoundf("review %s/%s/%d", key.ProductID, key.UserName, key.CommentID)
		}
		delete(d.reviews, key)
		return nil
	})
}

package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/store"
	"github.com/google/uuid"
)

// CreateProduct stores p and, when present, its specification in one
// transaction. The specification is always bound to the product's id.
func (s *Service) CreateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	spec := p.Specification

	var out catalog.Product
	err := s.store.InTx(ctx, func(q store.Queries) error {
		created, err := q.InsertProduct(ctx, p)
		if err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		if spec != nil {
			bound := *spec
			bound.ProductID = created.ID
			saved, err := q.UpsertSpecification(ctx, bound)
			if err != nil {
				return fmt.Errorf("insert specification: %w", err)
			}
			created.Specification = &saved
		}
		out = created
		return nil
	})
	if err != nil {
		return catalog.Product{}, err
	}
	return out, nil
}

// UpdateProduct replaces every field of product id with changes. A non-nil
// specification is upserted for id; a nil one deletes any existing row.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, changes catalog.Product) (catalog.Product, error) {
	var out catalog.Product
	err := s.store.InTx(ctx, func(q store.Queries) error {
		if _, err := q.GetProduct(ctx, id); err != nil {
			return err
		}

		changes.ID = id
		updated, err := q.UpdateProduct(ctx, changes)
		if err != nil {
			return fmt.Errorf("update product: %w", err)
		}

		if changes.Specification != nil {
			bound := *changes.Specification
			bound.ProductID = id
			saved, err := q.UpsertSpecification(ctx, bound)
			if err != nil {
				return fmt.Errorf("upsert specification: %w", err)
			}
			updated.Specification = &saved
		} else if err := q.DeleteSpecification(ctx, id); err != nil && !errors.Is(err, catalog.ErrNotFound) {
			return fmt.Errorf("delete specification: %w", err)
		}

		out = updated
		return nil
	})
	if err != nil {
		return catalog.Product{}, err
	}
	return out, nil
}

// DeleteProduct removes the specification first, then the product and the rows
// that cascade with it.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.store.InTx(ctx, func(q store.Queries) error {
		exists, err := q.ProductExists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return catalog.NotFoundf("product %s", id)
		}
		if err := q.DeleteSpecification(ctx, id); err != nil && !errors.Is(err, catalog.ErrNotFound) {
			return fmt.Errorf("delete specification: %w", err)
		}
		if err := q.DeleteProduct(ctx, id); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("product deleted", "product_id", id, "client_ip", ClientIPFromContext(ctx))
	return nil
}

// GetProduct returns the product with its specification joined. found is
// false when no product has this id.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (p catalog.Product, found bool, err error) {
	p, err = s.store.GetProduct(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return catalog.Product{}, false, nil
	}
	if err != nil {
		return catalog.Product{}, false, err
	}
	return p, true, nil
}

// ListProducts returns every product with its specification.
func (s *Service) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.store.ListProducts(ctx)
}

// ListProductsByCategory returns the products referencing categoryID.
func (s *Service) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.Product, error) {
	return s.store.ListProductsByCategory(ctx, categoryID)
}

// ListProductsByBrand returns the products referencing brandID.
func (s *Service) ListProductsByBrand(ctx context.Context, brandID uuid.UUID) ([]catalog.Product, error) {
	return s.store.ListProductsByBrand(ctx, brandID)
}

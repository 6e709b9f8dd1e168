package core

import (
	"context"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

// CreateCategory stores a new category with a generated id.
func (s *Service) CreateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	if c.Name == "" {
		return catalog.Category{}, catalog.InvalidArgumentf("category name is required")
	}
	c.ID = uuid.New()
	return s.store.InsertCategory(ctx, c)
}

func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (catalog.Category, error) {
	return s.store.GetCategory(ctx, id)
}

// GetCategoryByName returns the category with exactly this name.
func (s *Service) GetCategoryByName(ctx context.Context, name string) (catalog.Category, error) {
	return s.store.GetCategoryByName(ctx, name)
}

func (s *Service) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return s.store.ListCategories(ctx)
}

// UpdateCategory replaces every field of category id.
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, c catalog.Category) (catalog.Category, error) {
	c.ID = id
	return s.store.UpdateCategory(ctx, c)
}

// DeleteCategory removes a category; its products keep existing with no category.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteCategory(ctx, id)
}

// CreateBrand stores a new brand with a generated id.
func (s *Service) CreateBrand(ctx context.Context, b catalog.Brand) (catalog.Brand, error) {
	if b.Name == "" {
		return catalog.Brand{}, catalog.InvalidArgumentf("brand name is required")
	}
	b.ID = uuid.New()
	return s.store.InsertBrand(ctx, b)
}

func (s *Service) GetBrand(ctx context.Context, id uuid.UUID) (catalog.Brand, error) {
	return s.store.GetBrand(ctx, id)
}

// GetBrandByName returns the brand with exactly this name.
func (s *Service) GetBrandByName(ctx context.Context, name string) (catalog.Brand, error) {
	return s.store.GetBrandByName(ctx, name)
}

func (s *Service) ListBrands(ctx context.Context) ([]catalog.Brand, error) {
	return s.store.ListBrands(ctx)
}

// UpdateBrand replaces every field of brand id.
func (s *Service) UpdateBrand(ctx context.Context, id uuid.UUID, b catalog.Brand) (catalog.Brand, error) {
	b.ID = id
	return s.store.UpdateBrand(ctx, b)
}

// DeleteBrand removes a brand; its products keep existing with no brand.
func (s *Service) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteBrand(ctx, id)
}

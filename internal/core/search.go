package core

import (
	"context"
	"errors"
	"strings"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

// ProductCriteria filters products. Empty fields are ignored; the rest are ANDed.
type ProductCriteria struct {
	ProductName  string `json:"productName"`
	SKU          string `json:"sku"`
	CategoryName string `json:"categoryName"`
	BrandName    string `json:"brandName"`
}

// CategoryCriteria filters categories by substring.
type CategoryCriteria struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BrandCriteria filters brands by substring.
type BrandCriteria struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ResolvedProductCriteria is ProductCriteria with names turned into ids.
type ResolvedProductCriteria struct {
	ProductName string
	SKU         string
	CategoryID  *uuid.UUID
	BrandID     *uuid.UUID
}

// MatchProduct reports whether p satisfies c. Name and sku compare equal
// ignoring case; category and brand compare by id.
func MatchProduct(p catalog.Product, c ResolvedProductCriteria) bool {
	if c.ProductName != "" && !strings.EqualFold(p.Name, c.ProductName) {
		return false
	}
	if c.SKU != "" && !strings.EqualFold(p.SKU, c.SKU) {
		return false
	}
	if c.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *c.CategoryID) {
		return false
	}
	if c.BrandID != nil && (p.BrandID == nil || *p.BrandID != *c.BrandID) {
		return false
	}
	return true
}

// MatchCategory reports whether every non-empty criterion is a substring of
// the matching field. Case-sensitive.
func MatchCategory(cat catalog.Category, c CategoryCriteria) bool {
	if c.Name != "" && !strings.Contains(cat.Name, c.Name) {
		return false
	}
	if c.Description != "" && !strings.Contains(cat.Description, c.Description) {
		return false
	}
	return true
}

// MatchBrand is MatchCategory for brands.
func MatchBrand(b catalog.Brand, c BrandCriteria) bool {
	if c.Name != "" && !strings.Contains(b.Name, c.Name) {
		return false
	}
	if c.Description != "" && !strings.Contains(b.Description, c.Description) {
		return false
	}
	return true
}

// SearchProducts scans all products and keeps those matching c. A category or
// brand name that does not resolve makes the result empty.
func (s *Service) SearchProducts(ctx context.Context, c ProductCriteria) ([]catalog.Product, error) {
	resolved := ResolvedProductCriteria{ProductName: c.ProductName, SKU: c.SKU}

	if c.CategoryName != "" {
		cat, err := s.store.GetCategoryByName(ctx, c.CategoryName)
		if errors.Is(err, catalog.ErrNotFound) {
			return []catalog.Product{}, nil
		}
		if err != nil {
			return nil, err
		}
		resolved.CategoryID = &cat.ID
	}
	if c.BrandName != "" {
		b, err := s.store.GetBrandByName(ctx, c.BrandName)
		if errors.Is(err, catalog.ErrNotFound) {
			return []catalog.Product{}, nil
		}
		if err != nil {
			return nil, err
		}
		resolved.BrandID = &b.ID
	}

	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if MatchProduct(p, resolved) {
			out = append(out, p)
		}
	}
	return out, nil
}

// SearchCategories returns the categories matching c.
func (s *Service) SearchCategories(ctx context.Context, c CategoryCriteria) ([]catalog.Category, error) {
	all, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Category, 0, len(all))
	for _, cat := range all {
		if MatchCategory(cat, c) {
			out = append(out, cat)
		}
	}
	return out, nil
}

// SearchBrands returns the brands matching c.
func (s *Service) SearchBrands(ctx context.Context, c BrandCriteria) ([]catalog.Brand, error) {
	all, err := s.store.ListBrands(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Brand, 0, len(all))
	for _, b := range all {
		if MatchBrand(b, c) {
			out = append(out, b)
		}
	}
	return out, nil
}

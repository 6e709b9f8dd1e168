package postgres

import (
	"context"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/store"
)

func (s *Store) ListProductRefs(ctx context.Context) ([]store.ProductRef, error) {
	return collect(ctx, s.db, "list product refs", func(row scanner) (store.ProductRef, error) {
		var ref store.ProductRef
		p := &ref.Product
		err := row.Scan(
			&p.ID, &p.Name, &p.SKU, &p.ShortDescription, &p.LongDescription,
			&p.ShippingNotes, &p.WarrantyInfo, &p.VisibleToFrontEnd, &p.FeaturedProduct,
			&p.CategoryID, &p.BrandID, &p.CreatedAt, &p.UpdatedAt,
			&ref.CategoryName, &ref.BrandName,
		)
		return ref, err
	}, `
		SELECT `+productColumns+`, COALESCE(c.name, ''), COALESCE(b.name, '')
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN brands b ON b.id = p.brand_id
		ORDER BY p.created_at, p.id`)
}

// named wraps a row scanner so the trailing column is read as the product name.
func named[T any](dest func(*T) []any) func(scanner) (store.Named[T], error) {
	return func(row scanner) (store.Named[T], error) {
		var n store.Named[T]
		err := row.Scan(append(dest(&n.Row), &n.ProductName)...)
		return n, err
	}
}

func (s *Store) ListSpecificationsWithProduct(ctx context.Context) ([]store.Named[catalog.Specification], error) {
	return collect(ctx, s.db, "list specifications", named(func(sp *catalog.Specification) []any {
		return []any{&sp.ProductID, &sp.Weight, &sp.Color, &sp.Dimensions, &sp.Capacity, &sp.Material,
			&sp.Origin, &sp.Size, &sp.Wattage, &sp.Voltage, &sp.SpecialFeatures, &sp.CreatedAt, &sp.UpdatedAt}
	}), `SELECT `+specColumns+`, p.name FROM specifications s
		JOIN products p ON p.id = s.product_id ORDER BY s.created_at, s.product_id`)
}

func (s *Store) ListReviewsWithProduct(ctx context.Context) ([]store.Named[catalog.Review], error) {
	return collect(ctx, s.db, "list reviews", named(func(r *catalog.Review) []any {
		return []any{&r.ProductID, &r.UserName, &r.CommentID, &r.Comment, &r.Rating, &r.CreatedAt}
	}), `SELECT `+reviewColumns+`, p.name FROM reviews v
		JOIN products p ON p.id = v.product_id ORDER BY v.product_id, v.user_name, v.comment_id`)
}

func (s *Store) ListAssetsWithProduct(ctx context.Context) ([]store.Named[catalog.Asset], error) {
	return collect(ctx, s.db, "list assets", named(func(a *catalog.Asset) []any {
		return []any{&a.ID, &a.ProductID, &a.FileName, &a.Type, &a.Extension, &a.Data, &a.CreatedAt, &a.UpdatedAt}
	}), `SELECT `+assetColumns+`, p.name FROM assets a
		JOIN products p ON p.id = a.product_id ORDER BY a.id`)
}

func (s *Store) ListInventoriesWithProduct(ctx context.Context) ([]store.Named[catalog.Inventory], error) {
	return collect(ctx, s.db, "list inventories", named(func(i *catalog.Inventory) []any {
		return []any{&i.ProductID, &i.Bin, &i.Location, &i.Source, &i.OnHand, &i.OnHold,
			&i.Version, &i.CreatedAt, &i.UpdatedAt}
	}), `SELECT `+inventoryColumns+`, p.name FROM inventories i
		JOIN products p ON p.id = i.product_id ORDER BY i.created_at, i.product_id`)
}

func (s *Store) ListPricingWithProduct(ctx context.Context) ([]store.Named[catalog.Pricing], error) {
	return collect(ctx, s.db, "list pricing", named(func(r *catalog.Pricing) []any {
		return []any{&r.ProductID, &r.MSRP, &r.MAP, &r.Cost, &r.Sell, &r.Base, &r.StartDate, &r.EndDate,
			&r.CreatedBy, &r.Version, &r.CreatedAt, &r.UpdatedAt}
	}), `SELECT `+pricingColumns+`, p.name FROM pricing r
		JOIN products p ON p.id = r.product_id ORDER BY r.created_at, r.product_id`)
}

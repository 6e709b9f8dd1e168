// Package store defines the persistence port consumed by the core services.
//
// Two adapters implement it: store/postgres (pgx over a connection pool) and
// store/memory (copy-on-write snapshots, used for development and tests).
//
// Lookups by primary key return an error wrapping catalog.ErrNotFound when the
// row is missing. Constraint failures (duplicate sku, rows still referencing a
// product) wrap catalog.ErrConstraint. Conditional singleton writes that lose a
// version race return a *catalog.ConflictError.
package store

import (
	"context"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

// Store is a Queries bound to the shared database plus transaction support.
type Store interface {
	Queries

	// InTx runs fn inside a single transaction. The Queries passed to fn are
	// bound to that transaction; the transaction commits if fn returns nil and
	// rolls back otherwise. Readers outside the transaction never observe a
	// partially applied fn. Calling InTx on a transaction-bound Store nests
	// like a savepoint: a failed inner fn discards only its own writes.
	InTx(ctx context.Context, fn func(q Queries) error) error
}

// Named pairs a child row with its owning product's name for export.
type Named[T any] struct {
	Row         T
	ProductName string
}

// ProductRef is a product joined with its category and brand names.
type ProductRef struct {
	Product      catalog.Product
	CategoryName string
	BrandName    string
}

// Queries is the set of row-level operations available inside and outside a
// transaction.
type Queries interface {
	// Products. GetProduct and the list methods return each product with its
	// Specification read in the same statement or snapshot, so a reader never
	// pairs a product row with a specification from a different commit.
	// InsertProduct and UpdateProduct return the product row only.
	GetProduct(ctx context.Context, id uuid.UUID) (catalog.Product, error)
	ProductExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.Product, error)
	ListProductsByBrand(ctx context.Context, brandID uuid.UUID) ([]catalog.Product, error)
	InsertProduct(ctx context.Context, p catalog.Product) (catalog.Product, error)
	UpdateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	DeleteAllProducts(ctx context.Context) (int64, error)

	// Specifications.
	GetSpecification(ctx context.Context, productID uuid.UUID) (catalog.Specification, error)
	UpsertSpecification(ctx context.Context, s catalog.Specification) (catalog.Specification, error)
	DeleteSpecification(ctx context.Context, productID uuid.UUID) error
	DeleteAllSpecifications(ctx context.Context) (int64, error)

	// Assets.
	GetAsset(ctx context.Context, productID uuid.UUID, assetID int64) (catalog.Asset, error)
	ListAssets(ctx context.Context, productID uuid.UUID) ([]catalog.Asset, error)
	InsertAsset(ctx context.Context, a catalog.Asset) (catalog.Asset, error)
	UpdateAsset(ctx context.Context, a catalog.Asset) (catalog.Asset, error)
	DeleteAsset(ctx context.Context, productID uuid.UUID, assetID int64) error
	DeleteAssetsByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// Inventory. UpdateInventory only writes when the stored version equals
	// expectedVersion and stores expectedVersion+1.
	GetInventory(ctx context.Context, productID uuid.UUID) (catalog.Inventory, error)
	ListInventories(ctx context.Context) ([]catalog.Inventory, error)
	InsertInventory(ctx context.Context, inv catalog.Inventory) (catalog.Inventory, error)
	UpdateInventory(ctx context.Context, inv catalog.Inventory, expectedVersion int64) (catalog.Inventory, error)
	DeleteInventory(ctx context.Context, productID uuid.UUID) error

	// Pricing, same contract as Inventory.
	GetPricing(ctx context.Context, productID uuid.UUID) (catalog.Pricing, error)
	ListPricing(ctx context.Context) ([]catalog.Pricing, error)
	InsertPricing(ctx context.Context, p catalog.Pricing) (catalog.Pricing, error)
	UpdatePricing(ctx context.Context, p catalog.Pricing, expectedVersion int64) (catalog.Pricing, error)
	DeletePricing(ctx context.Context, productID uuid.UUID) error

	// Reviews. NextCommentID atomically reserves the next comment id for the
	// (productID, userName) pair; reserved ids are never handed out again.
	NextCommentID(ctx context.Context, productID uuid.UUID, userName string) (int, error)
	InsertReview(ctx context.Context, r catalog.Review) (catalog.Review, error)
	GetReview(ctx context.Context, key catalog.ReviewKey) (catalog.Review, error)
	ListReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Review, error)
	ListReviewsByProductAndUser(ctx context.Context, productID uuid.UUID, userName string) ([]catalog.Review, error)
	DeleteReview(ctx context.Context, key catalog.ReviewKey) error

	// Categories.
	GetCategory(ctx context.Context, id uuid.UUID) (catalog.Category, error)
	GetCategoryByName(ctx context.Context, name string) (catalog.Category, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	InsertCategory(ctx context.Context, c catalog.Category) (catalog.Category, error)
	UpdateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Brands.
	GetBrand(ctx context.Context, id uuid.UUID) (catalog.Brand, error)
	GetBrandByName(ctx context.Context, name string) (catalog.Brand, error)
	ListBrands(ctx context.Context) ([]catalog.Brand, error)
	InsertBrand(ctx context.Context, b catalog.Brand) (catalog.Brand, error)
	UpdateBrand(ctx context.Context, b catalog.Brand) (catalog.Brand, error)
	DeleteBrand(ctx context.Context, id uuid.UUID) error

	// Joined reads for export.
	ListProductRefs(ctx context.Context) ([]ProductRef, error)
	ListSpecificationsWithProduct(ctx context.Context) ([]Named[catalog.Specification], error)
	ListReviewsWithProduct(ctx context.Context) ([]Named[catalog.Review], error)
	ListAssetsWithProduct(ctx context.Context) ([]Named[catalog.Asset], error)
	ListInventoriesWithProduct(ctx context.Context) ([]Named[catalog.Inventory], error)
	ListPricingWithProduct(ctx context.Context) ([]Named[catalog.Pricing], error)
}

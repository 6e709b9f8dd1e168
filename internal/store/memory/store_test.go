package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/store"
	"github.com/google/uuid"
)

func mustProduct(t *testing.T, s *Store, name, sku string) catalog.Product {
	t.Helper()
	p, err := s.InsertProduct(context.Background(), catalog.Product{ID: uuid.New(), Name: name, SKU: sku})
	if err != nil {
		t.Fatalf("InsertProduct(%q) error: %v", name, err)
	}
	return p
}

// =============================================================================
// Transactions
// =============================================================================

func TestInTx_RollbackDiscardsChanges(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(q store.Queries) error {
		if _, err := q.InsertProduct(ctx, catalog.Product{ID: uuid.New(), Name: "A"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("InTx error = %v, want boom", err)
	}

	products, _ := s.ListProducts(ctx)
	if len(products) != 0 {
		t.Errorf("after rollback got %d products, want 0", len(products))
	}
}

func TestInTx_CommitPublishesChanges(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.InTx(ctx, func(q store.Queries) error {
		for _, name := range []string{"A", "B"} {
			if _, err := q.InsertProduct(ctx, catalog.Product{ID: uuid.New(), Name: name}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("InTx error: %v", err)
	}
	products, _ := s.ListProducts(ctx)
	if len(products) != 2 {
		t.Errorf("after commit got %d products, want 2", len(products))
	}
}

func TestInTx_NestedJoinsOuter(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.InTx(ctx, func(q store.Queries) error {
		tx := q.(*Store)
		return tx.InTx(ctx, func(inner store.Queries) error {
			_, err := inner.InsertProduct(ctx, catalog.Product{ID: uuid.New(), Name: "nested"})
			return err
		})
	})
	if err != nil {
		t.Fatalf("InTx error: %v", err)
	}
	products, _ := s.ListProducts(ctx)
	if len(products) != 1 {
		t.Errorf("got %d products, want 1", len(products))
	}
}

func TestInTx_CancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.InTx(ctx, func(store.Queries) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("InTx error = %v, want context.Canceled", err)
	}
	if called {
		t.Error("fn ran despite cancelled context")
	}
}

// =============================================================================
// Products and constraints
// =============================================================================

func TestProducts_Constraints(t *testing.T) {
	s := New()
	ctx := context.Background()
	p := mustProduct(t, s, "Lamp", "L-1")

	tests := []struct {
		name    string
		product catalog.Product
		wantErr error
	}{
		{"duplicate sku", catalog.Product{ID: uuid.New(), Name: "Other", SKU: "L-1"}, catalog.ErrConstraint},
		{"duplicate id", catalog.Product{ID: p.ID, Name: "Again"}, catalog.ErrConstraint},
		{"missing category", catalog.Product{ID: uuid.New(), Name: "X", CategoryID: ptr(uuid.New())}, catalog.ErrConstraint},
		{"missing brand", catalog.Product{ID: uuid.New(), Name: "Y", BrandID: ptr(uuid.New())}, catalog.ErrConstraint},
		{"empty sku twice is fine", catalog.Product{ID: uuid.New(), Name: "Z"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.InsertProduct(ctx, tt.product)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInTx_NestedRollsBackOnlyInnerWork(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")
	outer, inner, kept := uuid.New(), uuid.New(), uuid.New()

	err := s.InTx(ctx, func(q store.Queries) error {
		if _, err := q.InsertProduct(ctx, catalog.Product{ID: outer, Name: "outer"}); err != nil {
			return err
		}
		nested, ok := q.(store.Store)
		if !ok {
			t.Fatal("transaction Queries does not implement store.Store")
		}
		err := nested.InTx(ctx, func(q store.Queries) error {
			if _, err := q.InsertProduct(ctx, catalog.Product{ID: inner, Name: "inner"}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Errorf("nested InTx error = %v, want boom", err)
		}
		if exists, _ := q.ProductExists(ctx, inner); exists {
			t.Error("failed nested write visible to outer transaction")
		}
		return nested.InTx(ctx, func(q store.Queries) error {
			_, err := q.InsertProduct(ctx, catalog.Product{ID: kept, Name: "kept"})
			return err
		})
	})
	if err != nil {
		t.Fatalf("InTx error: %v", err)
	}

	for id, want := range map[uuid.UUID]bool{outer: true, inner: false, kept: true} {
		if exists, _ := s.ProductExists(ctx, id); exists != want {
			t.Errorf("ProductExists(%s) = %v, want %v", id, exists, want)
		}
	}
}

func TestDeleteProduct_SpecificationBlocksThenCascade(t *testing.T) {
	s := New()
	ctx := context.Background()
	p := mustProduct(t, s, "Lamp", "")

	if _, err := s.UpsertSpecification(ctx, catalog.Specification{ProductID: p.ID, Color: "red"}); err != nil {
		t.Fatalf("UpsertSpecification error: %v", err)
	}
	if _, err := s.InsertAsset(ctx, catalog.Asset{ProductID: p.ID, FileName: "a.png", Data: []byte{1}}); err != nil {
		t.Fatalf("InsertAsset error: %v", err)
	}
	if _, err := s.InsertInventory(ctx, catalog.Inventory{ProductID: p.ID, OnHand: 3}); err != nil {
		t.Fatalf("InsertInventory error: %v", err)
	}
	id, err := s.NextCommentID(ctx, p.ID, "ann")
	if err != nil {
		t.Fatalf("NextCommentID error: %v", err)
	}
	if _, err := s.InsertReview(ctx, catalog.Review{ProductID: p.ID, UserName: "ann", CommentID: id}); err != nil {
		t.Fatalf("InsertReview error: %v", err)
	}

	if err := s.DeleteProduct(ctx, p.ID); !errors.Is(err, catalog.ErrConstraint) {
		t.Fatalf("DeleteProduct with spec error = %v, want ErrConstraint", err)
	}

	if err := s.DeleteSpecification(ctx, p.ID); err != nil {
		t.Fatalf("DeleteSpecification error: %v", err)
	}
	if err := s.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct error: %v", err)
	}

	if assets, _ := s.ListAssets(ctx, p.ID); len(assets) != 0 {
		t.Errorf("assets not cascaded: %d left", len(assets))
	}
	if _, err := s.GetInventory(ctx, p.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("inventory not cascaded: %v", err)
	}
	if reviews, _ := s.ListReviewsByProduct(ctx, p.ID); len(reviews) != 0 {
		t.Errorf("reviews not cascaded: %d left", len(reviews))
	}
	if err := s.DeleteProduct(ctx, p.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("second DeleteProduct error = %v, want ErrNotFound", err)
	}
}

func TestProductReads_JoinSpecification(t *testing.T) {
	s := New()
	ctx := context.Background()
	with := mustProduct(t, s, "With", "W-1")
	without := mustProduct(t, s, "Without", "W-2")
	if _, err := s.UpsertSpecification(ctx, catalog.Specification{ProductID: with.ID, Color: "red"}); err != nil {
		t.Fatalf("UpsertSpecification error: %v", err)
	}

	got, err := s.GetProduct(ctx, with.ID)
	if err != nil {
		t.Fatalf("GetProduct error: %v", err)
	}
	if got.Specification == nil || got.Specification.Color != "red" {
		t.Errorf("GetProduct specification = %+v, want red", got.Specification)
	}

	all, err := s.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts error: %v", err)
	}
	for _, p := range all {
		switch p.ID {
		case with.ID:
			if p.Specification == nil || p.Specification.ProductID != with.ID {
				t.Errorf("listed %q specification = %+v", p.Name, p.Specification)
			}
		case without.ID:
			if p.Specification != nil {
				t.Errorf("listed %q specification = %+v, want nil", p.Name, p.Specification)
			}
		}
	}

	// Stored rows stay free of the joined pointer.
	if err := s.DeleteSpecification(ctx, with.ID); err != nil {
		t.Fatalf("DeleteSpecification error: %v", err)
	}
	if got, _ := s.GetProduct(ctx, with.ID); got.Specification != nil {
		t.Errorf("specification after delete = %+v, want nil", got.Specification)
	}
}

func TestDeleteCategory_SetsNull(t *testing.T) {
	s := New()
	ctx := context.Background()

	c, err := s.InsertCategory(ctx, catalog.Category{Name: "Lighting"})
	if err != nil {
		t.Fatalf("InsertCategory error: %v", err)
	}
	p, err := s.InsertProduct(ctx, catalog.Product{ID: uuid.New(), Name: "Lamp", CategoryID: &c.ID})
	if err != nil {
		t.Fatalf("InsertProduct error: %v", err)
	}

	if err := s.DeleteCategory(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCategory error: %v", err)
	}
	got, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct error: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("CategoryID = %v, want nil", got.CategoryID)
	}
}

// =============================================================================
// Singletons
// =============================================================================

func TestInventory_Versioning(t *testing.T) {
	s := New()
	ctx := context.Background()
	p := mustProduct(t, s, "Lamp", "")

	inv, err := s.InsertInventory(ctx, catalog.Inventory{ProductID: p.ID, OnHand: 1})
	if err != nil {
		t.Fatalf("InsertInventory error: %v", err)
	}
	if inv.Version != 1 {
		t.Errorf("Version = %d, want 1", inv.Version)
	}

	_, err = s.InsertInventory(ctx, catalog.Inventory{ProductID: p.ID})
	var conflict *catalog.ConflictError
	if !errors.As(err, &conflict) || conflict.Kind != "inventory" {
		t.Fatalf("second insert error = %v, want inventory ConflictError", err)
	}

	inv.OnHand = 5
	updated, err := s.UpdateInventory(ctx, inv, 1)
	if err != nil {
		t.Fatalf("UpdateInventory error: %v", err)
	}
	if updated.Version != 2 || updated.OnHand != 5 {
		t.Errorf("updated = %+v, want version 2 on_hand 5", updated)
	}

	if _, err := s.UpdateInventory(ctx, inv, 1); !errors.Is(err, catalog.ErrConcurrencyConflict) {
		t.Errorf("stale update error = %v, want ErrConcurrencyConflict", err)
	}
}

func TestPricing_MissingProduct(t *testing.T) {
	s := New()
	_, err := s.InsertPricing(context.Background(), catalog.Pricing{ProductID: uuid.New()})
	if !errors.Is(err, catalog.ErrConstraint) {
		t.Errorf("error = %v, want ErrConstraint", err)
	}
}

// =============================================================================
// Reviews
// =============================================================================

func TestNextCommentID_Concurrent(t *testing.T) {
	s := New()
	ctx := context.Background()
	p := mustProduct(t, s, "Lamp", "")

	const n = 50
	ids := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := s.NextCommentID(ctx, p.ID, "ann")
			if err != nil {
				t.Errorf("NextCommentID error: %v", err)
				return
			}
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, n)
	for _, id := range ids {
		if id < 1 || id > n || seen[id] {
			t.Fatalf("unexpected or duplicate id %d", id)
		}
		seen[id] = true
	}
}

func TestNextCommentID_SeededFromExisting(t *testing.T) {
	s := New()
	ctx := context.Background()
	p := mustProduct(t, s, "Lamp", "")

	if _, err := s.InsertReview(ctx, catalog.Review{ProductID: p.ID, UserName: "bob", CommentID: 7}); err != nil {
		t.Fatalf("InsertReview error: %v", err)
	}
	id, err := s.NextCommentID(ctx, p.ID, "bob")
	if err != nil {
		t.Fatalf("NextCommentID error: %v", err)
	}
	if id != 8 {
		t.Errorf("id = %d, want 8", id)
	}

	// other users have their own sequence
	other, _ := s.NextCommentID(ctx, p.ID, "cy")
	if other != 1 {
		t.Errorf("other user id = %d, want 1", other)
	}
}

// =============================================================================
// Export joins
// =============================================================================

func TestListProductRefs_Names(t *testing.T) {
	s := New()
	ctx := context.Background()

	b, _ := s.InsertBrand(ctx, catalog.Brand{Name: "Acme"})
	if _, err := s.InsertProduct(ctx, catalog.Product{ID: uuid.New(), Name: "Lamp", BrandID: &b.ID}); err != nil {
		t.Fatalf("InsertProduct error: %v", err)
	}

	refs, err := s.ListProductRefs(ctx)
	if err != nil {
		t.Fatalf("ListProductRefs error: %v", err)
	}
	if len(refs) != 1 || refs[0].BrandName != "Acme" || refs[0].CategoryName != "" {
		t.Errorf("refs = %+v", refs)
	}
}

func ptr[T any](v T) *T { return &v }

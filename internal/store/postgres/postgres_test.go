package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, catalog.ErrNotFound},
		{"unique", &pgconn.PgError{Code: codeUniqueViolation, Message: "dup"}, catalog.ErrConstraint},
		{"foreign key", &pgconn.PgError{Code: codeForeignKeyViolation}, catalog.ErrConstraint},
		{"wrapped foreign key", fmt.Errorf("exec: %w", &pgconn.PgError{Code: codeForeignKeyViolation}), catalog.ErrConstraint},
		{"other pg error", &pgconn.PgError{Code: "42P01"}, catalog.ErrInternal},
		{"plain error", errors.New("connection refused"), catalog.ErrInternal},
		{"cancelled", context.Canceled, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err, "op")
			if tt.want == nil {
				if got != nil {
					t.Errorf("translate(nil) = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("translate(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Integration tests (require CATALOG_TEST_DATABASE_URL)
// =============================================================================

func testStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("CATALOG_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CATALOG_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := Migrate(ctx, pool); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE specifications, products, categories, brands CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return New(pool)
}

func TestIntegration_NextCommentIDConcurrent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p, err := s.InsertProduct(ctx, catalog.Product{Name: "Lamp"})
	if err != nil {
		t.Fatalf("InsertProduct: %v", err)
	}

	const n = 20
	ids := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := s.NextCommentID(ctx, p.ID, "ann")
			if err != nil {
				t.Errorf("NextCommentID: %v", err)
				return
			}
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for _, id := range ids {
		if id < 1 || id > n || seen[id] {
			t.Fatalf("unexpected or duplicate id %d", id)
		}
		seen[id] = true
	}
}

func TestIntegration_SpecificationBlocksDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p, err := s.InsertProduct(ctx, catalog.Product{Name: "Lamp", SKU: "L-1"})
	if err != nil {
		t.Fatalf("InsertProduct: %v", err)
	}
	if _, err := s.UpsertSpecification(ctx, catalog.Specification{ProductID: p.ID, Color: "red"}); err != nil {
		t.Fatalf("UpsertSpecification: %v", err)
	}
	if err := s.DeleteProduct(ctx, p.ID); !errors.Is(err, catalog.ErrConstraint) {
		t.Errorf("DeleteProduct error = %v, want ErrConstraint", err)
	}
	if _, err := s.InsertProduct(ctx, catalog.Product{Name: "Dup", SKU: "L-1"}); !errors.Is(err, catalog.ErrConstraint) {
		t.Errorf("duplicate sku error = %v, want ErrConstraint", err)
	}
}

func TestIntegration_ProductReadsJoinSpecification(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	with, err := s.InsertProduct(ctx, catalog.Product{Name: "With", SKU: "J-1"})
	if err != nil {
		t.Fatalf("InsertProduct: %v", err)
	}
	without, err := s.InsertProduct(ctx, catalog.Product{Name: "Without", SKU: "J-2"})
	if err != nil {
		t.Fatalf("InsertProduct: %v", err)
	}
	if _, err := s.UpsertSpecification(ctx, catalog.Specification{ProductID: with.ID, Color: "red"}); err != nil {
		t.Fatalf("UpsertSpecification: %v", err)
	}

	got, err := s.GetProduct(ctx, with.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Specification == nil || got.Specification.Color != "red" || got.Specification.ProductID != with.ID {
		t.Errorf("GetProduct specification = %+v", got.Specification)
	}
	got, err = s.GetProduct(ctx, without.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Specification != nil {
		t.Errorf("GetProduct specification = %+v, want nil", got.Specification)
	}
	if _, err := s.GetProduct(ctx, uuid.New()); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("GetProduct missing error = %v, want ErrNotFound", err)
	}
}

func TestIntegration_InTxRollback(t *testing.T) {
	s := testStore(t)
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
	products, err := s.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("got %d products after rollback, want 0", len(products))
	}
}

func TestIntegration_InventoryConflict(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p, _ := s.InsertProduct(ctx, catalog.Product{Name: "Lamp"})
	inv, err := s.InsertInventory(ctx, catalog.Inventory{ProductID: p.ID, OnHand: 1})
	if err != nil {
		t.Fatalf("InsertInventory: %v", err)
	}
	if _, err := s.UpdateInventory(ctx, inv, inv.Version); err != nil {
		t.Fatalf("UpdateInventory: %v", err)
	}
	_, err = s.UpdateInventory(ctx, inv, inv.Version)
	var conflict *catalog.ConflictError
	if !errors.As(err, &conflict) {
		t.Errorf("stale update error = %v, want ConflictError", err)
	}
	if _, err := s.UpdateInventory(ctx, catalog.Inventory{ProductID: uuid.New()}, 1); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("missing update error = %v, want ErrNotFound", err)
	}
}

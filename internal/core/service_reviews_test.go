package core

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

func TestSaveReview_ConcurrentIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService(t)
	p := mustCreateProduct(t, svc, catalog.Product{Name: "Blender"})

	const n = 50
	ids := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := svc.SaveReview(ctx, catalog.Review{ProductID: p.ID, UserName: "sam", Comment: "great", Rating: ptr(5)})
			if err != nil {
				t.Errorf("SaveReview: %v", err)
				return
			}
			ids[i] = r.CommentID
		}()
	}
	wg.Wait()

	sort.Ints(ids)
	for i, id := range ids {
		if id != i+1 {
			t.Fatalf("comment ids = %v, want 1..%d", ids, n)
		}
	}

	reviews, err := svc.ListReviewsByProductAndUser(ctx, p.ID, "sam")
	if err != nil || len(reviews) != n {
		t.Errorf("ListReviewsByProductAndUser = %d, %v; want %d", len(reviews), err, n)
	}
}

func TestSaveReview_IDsPerUserAndNoReuse(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService(t)
	p := mustCreateProduct(t, svc, catalog.Product{Name: "Toaster"})

	save := func(user string) catalog.Review {
		t.Helper()
		r, err := svc.SaveReview(ctx, catalog.Review{ProductID: p.ID, UserName: user, CommentID: 99})
		if err != nil {
			t.Fatalf("SaveReview(%s): %v", user, err)
		}
		return r
	}

	a1 := save("ana")
	a2 := save("ana")
	b1 := save("ben")
	if a1.CommentID != 1 || a2.CommentID != 2 || b1.CommentID != 1 {
		t.Fatalf("ids = %d, %d, %d; want 1, 2, 1", a1.CommentID, a2.CommentID, b1.CommentID)
	}

	if err := svc.DeleteReview(ctx, a2.Key()); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	if a3 := save("ana"); a3.CommentID != 3 {
		t.Errorf("id after delete = %d, want 3", a3.CommentID)
	}

	if _, found, err := svc.GetReview(ctx, a2.Key()); err != nil || found {
		t.Errorf("GetReview(deleted) = found %v, err %v", found, err)
	}
	got, found, err := svc.GetReview(ctx, a1.Key())
	if err != nil || !found || got.UserName != "ana" {
		t.Errorf("GetReview = %+v, found %v, err %v", got, found, err)
	}
}

func TestSaveReview_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService(t)
	p := mustCreateProduct(t, svc, catalog.Product{Name: "Mixer"})

	tests := []struct {
		name    string
		review  catalog.Review
		wantErr error
	}{
		{"missing user name", catalog.Review{ProductID: p.ID}, catalog.ErrInvalidArgument},
		{"missing product", catalog.Review{ProductID: uuid.New(), UserName: "ana"}, catalog.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveReview(ctx, tt.review)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SaveReview error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := svc.DeleteReview(ctx, catalog.ReviewKey{ProductID: p.ID, UserName: "x", CommentID: 1}); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("DeleteReview(missing) error = %v, want not found", err)
	}
}

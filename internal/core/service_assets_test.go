package core

import (
	"context"
	"errors"
	"testing"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
)

func TestSaveAssets(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService(t)
	p := mustCreateProduct(t, svc, catalog.Product{Name: "Camera"})

	files := []catalog.UploadedFile{
		catalog.NewUploadedFile("front.jpg", []byte("front")),
		catalog.NewUploadedFile("back.jpg", []byte("back")),
	}

	tests := []struct {
		name      string
		productID uuid.UUID
		metas     []catalog.AssetMeta
		files     []catalog.UploadedFile
		wantErr   error
	}{
		{
			name:      "count mismatch",
			productID: p.ID,
			metas:     []catalog.AssetMeta{{Type: "image"}},
			files:     files,
			wantErr:   catalog.ErrInvalidArgument,
		},
		{
			name:      "missing product",
			productID: uuid.New(),
			metas:     []catalog.AssetMeta{{}, {}},
			files:     files,
			wantErr:   catalog.ErrNotFound,
		},
		{
			name:      "unreadable file",
			productID: p.ID,
			metas:     []catalog.AssetMeta{{}},
			files:     []catalog.UploadedFile{errFile{}},
			wantErr:   catalog.ErrInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SaveAssets(ctx, tt.productID, tt.metas, tt.files); !errors.Is(err, tt.wantErr) {
				t.Errorf("SaveAssets error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if assets, _ := svc.ListAssets(ctx, p.ID); len(assets) != 0 {
		t.Fatalf("assets after failures = %d, want 0", len(assets))
	}

	saved, err := svc.SaveAssets(ctx, p.ID, []catalog.AssetMeta{
		{Type: "image", Extension: "jpg"},
		{FileName: "rear view", Type: "image", Extension: "jpg"},
	}, files)
	if err != nil {
		t.Fatalf("SaveAssets: %v", err)
	}
	if len(saved) != 2 || saved[0].FileName != "front.jpg" || saved[1].FileName != "rear view" {
		t.Fatalf("saved = %+v", saved)
	}
	if saved[0].ID >= saved[1].ID {
		t.Errorf("asset ids = %d, %d; want increasing", saved[0].ID, saved[1].ID)
	}

	listed, err := svc.ListAssets(ctx, p.ID)
	if err != nil || len(listed) != 2 || listed[0].ID != saved[0].ID {
		t.Errorf("ListAssets = %+v, %v", listed, err)
	}
}

func TestUpdateAndDeleteAssets(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService(t)
	p := mustCreateProduct(t, svc, catalog.Product{Name: "Speaker"})

	saved, err := svc.SaveAssets(ctx, p.ID,
		[]catalog.AssetMeta{{Type: "manual"}, {Type: "image"}},
		[]catalog.UploadedFile{
			catalog.NewUploadedFile("manual.pdf", []byte("%PDF")),
			catalog.NewUploadedFile("photo.png", []byte("png")),
		})
	if err != nil {
		t.Fatalf("SaveAssets: %v", err)
	}
	manual := saved[0]

	renamed, err := svc.UpdateAsset(ctx, p.ID, manual.ID, catalog.AssetMeta{FileName: "guide.pdf", Type: "manual", Extension: "pdf"}, nil)
	if err != nil {
		t.Fatalf("UpdateAsset(meta only): %v", err)
	}
	if renamed.FileName != "guide.pdf" || string(renamed.Data) != "%PDF" {
		t.Errorf("renamed = %q with %q, want payload kept", renamed.FileName, renamed.Data)
	}

	replaced, err := svc.UpdateAsset(ctx, p.ID, manual.ID, catalog.AssetMeta{FileName: "guide.pdf"}, catalog.NewUploadedFile("v2.pdf", []byte("%PDF-2")))
	if err != nil {
		t.Fatalf("UpdateAsset(payload): %v", err)
	}
	got, err := svc.GetAsset(ctx, p.ID, replaced.ID)
	if err != nil || string(got.Data) != "%PDF-2" {
		t.Errorf("GetAsset = %q, %v; want new payload", got.Data, err)
	}

	if _, err := svc.UpdateAsset(ctx, uuid.New(), manual.ID, catalog.AssetMeta{}, nil); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("UpdateAsset(wrong product) error = %v, want not found", err)
	}

	if err := svc.DeleteAsset(ctx, p.ID, manual.ID); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	if _, err := svc.GetAsset(ctx, p.ID, manual.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("GetAsset(deleted) error = %v, want not found", err)
	}

	n, err := svc.DeleteAssetsByProduct(ctx, p.ID)
	if err != nil || n != 1 {
		t.Errorf("DeleteAssetsByProduct = %d, %v; want 1", n, err)
	}
}

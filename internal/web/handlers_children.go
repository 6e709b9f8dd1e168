package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/go-chi/chi/v5"
)

// maxAssetUpload caps one asset request, payloads included.
const maxAssetUpload = 64 << 20

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	assets, err := s.service.ListAssets(r.Context(), productID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

// handleSaveAssets expects a multipart form with an "assets" field holding a
// JSON array of descriptions and one "files" part per description.
func (s *Server) handleSaveAssets(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := parseMultipart(w, r, maxAssetUpload); err != nil {
		respondError(w, r, err)
		return
	}

	var metas []catalog.AssetMeta
	if raw := r.FormValue("assets"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metas); err != nil {
			respondError(w, r, catalog.InvalidArgumentf("invalid assets field: %v", err))
			return
		}
	}

	saved, err := s.service.SaveAssets(r.Context(), productID, metas, formFiles(r, "files"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// handleGetAsset streams the stored payload.
func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	assetID, err := intParam(r, "assetID")
	if err != nil {
		respondError(w, r, err)
		return
	}

	asset, err := s.service.GetAsset(r.Context(), productID, assetID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	contentType := asset.Type
	if contentType == "" {
		contentType = http.DetectContentType(asset.Data)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(asset.Data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", asset.FileName))
	w.WriteHeader(http.StatusOK)
	w.Write(asset.Data)
}

// handleUpdateAsset takes an "asset" JSON description and an optional "file"
// part that replaces the payload.
func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	assetID, err := intParam(r, "assetID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := parseMultipart(w, r, maxAssetUpload); err != nil {
		respondError(w, r, err)
		return
	}

	var meta catalog.AssetMeta
	if err := json.Unmarshal([]byte(r.FormValue("asset")), &meta); err != nil {
		respondError(w, r, catalog.InvalidArgumentf("invalid asset field: %v", err))
		return
	}

	updated, err := s.service.UpdateAsset(r.Context(), productID, assetID, meta, formFileOptional(r, "file"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	assetID, err := intParam(r, "assetID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.DeleteAsset(r.Context(), productID, assetID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAllAssets(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	n, err := s.service.DeleteAssetsByProduct(r.Context(), productID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

// handleListReviews lists a product's reviews, narrowed to one user when the
// userName query parameter is set.
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var reviews []catalog.Review
	if user := r.URL.Query().Get("userName"); user != "" {
		reviews, err = s.service.ListReviewsByProductAndUser(r.Context(), productID, user)
	} else {
		reviews, err = s.service.ListReviewsByProduct(r.Context(), productID)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// handleSaveReview stores a review; the comment id is assigned by the server.
func (s *Server) handleSaveReview(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var review catalog.Review
	if err := decodeJSON(w, r, &review); err != nil {
		respondError(w, r, err)
		return
	}
	review.ProductID = productID

	saved, err := s.service.SaveReview(r.Context(), review)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func reviewKeyParam(r *http.Request) (catalog.ReviewKey, error) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		return catalog.ReviewKey{}, err
	}
	commentID, err := intParam(r, "commentID")
	if err != nil {
		return catalog.ReviewKey{}, err
	}
	userName, err := url.PathUnescape(chi.URLParam(r, "userName"))
	if err != nil {
		return catalog.ReviewKey{}, catalog.InvalidArgumentf("invalid user name: %v", err)
	}
	return catalog.ReviewKey{
		ProductID: productID,
		UserName:  userName,
		CommentID: int(commentID),
	}, nil
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	key, err := reviewKeyParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	review, found, err := s.service.GetReview(r.Context(), key)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !found {
		respondError(w, r, catalog.NotFoundf("review %s/%s/%d", key.ProductID, key.UserName, key.CommentID))
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	key, err := reviewKeyParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.DeleteReview(r.Context(), key); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package web

import (
	"net/http"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/core"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.service.ListProducts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := decodeJSON(w, r, &p); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.service.CreateProduct(r.Context(), p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	p, found, err := s.service.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !found {
		respondError(w, r, catalog.NotFoundf("product %s", id))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleUpdateProduct replaces the product's fields. Omitting "specification"
// removes any stored specification.
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var changes catalog.Product
	if err := decodeJSON(w, r, &changes); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := s.service.UpdateProduct(r.Context(), id, changes)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSearchProducts filters by the productName, sku, categoryName and
// brandName query parameters. Absent parameters match everything.
func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := s.service.SearchProducts(r.Context(), core.ProductCriteria{
		ProductName:  q.Get("productName"),
		SKU:          q.Get("sku"),
		CategoryName: q.Get("categoryName"),
		BrandName:    q.Get("brandName"),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleProductsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	products, err := s.service.ListProductsByCategory(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleProductsByBrand(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	products, err := s.service.ListProductsByBrand(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

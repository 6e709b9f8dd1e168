package web

import (
	"net/http"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/core"
	"github.com/google/uuid"
)

// PUT saves with the optimistic version check (version 0 creates), PATCH
// updates an existing row and checks the version only when one is sent.

func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	rows, err := s.service.ListInventories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleGetInventory(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	inv, found, err := s.service.GetInventory(r.Context(), productID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !found {
		respondError(w, r, catalog.NotFoundf("inventory for product %s", productID))
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) decodeInventory(w http.ResponseWriter, r *http.Request) (catalog.Inventory, error) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		return catalog.Inventory{}, err
	}
	var inv catalog.Inventory
	if err := decodeJSON(w, r, &inv); err != nil {
		return catalog.Inventory{}, err
	}
	inv.ProductID = productID
	return inv, nil
}

func (s *Server) handleSaveInventory(w http.ResponseWriter, r *http.Request) {
	inv, err := s.decodeInventory(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	saved, err := s.service.SaveInventory(r.Context(), inv)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleUpdateInventory(w http.ResponseWriter, r *http.Request) {
	inv, err := s.decodeInventory(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	updated, err := s.service.UpdateInventory(r.Context(), inv.ProductID, inv)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteInventory(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.DeleteInventory(r.Context(), productID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pricingRequest carries prices and dates as text so callers can send
// "$1,299.00" or "3/1/2025". Unparseable values are stored as NULL.
type pricingRequest struct {
	MSRP      string `json:"msrp"`
	MAP       string `json:"map"`
	Cost      string `json:"cost"`
	Sell      string `json:"sell"`
	Base      string `json:"base"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	CreatedBy string `json:"createdBy"`
	Version   int64  `json:"version"`
}

func (p pricingRequest) toPricing(productID uuid.UUID) catalog.Pricing {
	return catalog.Pricing{
		ProductID: productID,
		MSRP:      core.ToPgNumeric(p.MSRP),
		MAP:       core.ToPgNumeric(p.MAP),
		Cost:      core.ToPgNumeric(p.Cost),
		Sell:      core.ToPgNumeric(p.Sell),
		Base:      core.ToPgNumeric(p.Base),
		StartDate: core.ToPgDate(p.StartDate),
		EndDate:   core.ToPgDate(p.EndDate),
		CreatedBy: p.CreatedBy,
		Version:   p.Version,
	}
}

// pricingResponse renders prices as plain decimal strings so no precision is
// lost in JSON numbers.
type pricingResponse struct {
	ProductID uuid.UUID `json:"productId"`
	MSRP      string    `json:"msrp"`
	MAP       string    `json:"map"`
	Cost      string    `json:"cost"`
	Sell      string    `json:"sell"`
	Base      string    `json:"base"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	CreatedBy string    `json:"createdBy"`
	Version   int64     `json:"version"`
}

func newPricingResponse(p catalog.Pricing) pricingResponse {
	return pricingResponse{
		ProductID: p.ProductID,
		MSRP:      core.NumericString(p.MSRP),
		MAP:       core.NumericString(p.MAP),
		Cost:      core.NumericString(p.Cost),
		Sell:      core.NumericString(p.Sell),
		Base:      core.NumericString(p.Base),
		StartDate: core.DateString(p.StartDate),
		EndDate:   core.DateString(p.EndDate),
		CreatedBy: p.CreatedBy,
		Version:   p.Version,
	}
}

func (s *Server) handleListPricing(w http.ResponseWriter, r *http.Request) {
	rows, err := s.service.ListPricing(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]pricingResponse, len(rows))
	for i, p := range rows {
		out[i] = newPricingResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPricing(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	p, found, err := s.service.GetPricing(r.Context(), productID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !found {
		respondError(w, r, catalog.NotFoundf("pricing for product %s", productID))
		return
	}
	writeJSON(w, http.StatusOK, newPricingResponse(p))
}

func (s *Server) decodePricing(w http.ResponseWriter, r *http.Request) (catalog.Pricing, error) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		return catalog.Pricing{}, err
	}
	var req pricingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return catalog.Pricing{}, err
	}
	return req.toPricing(productID), nil
}

func (s *Server) handleSavePricing(w http.ResponseWriter, r *http.Request) {
	p, err := s.decodePricing(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	saved, err := s.service.SavePricing(r.Context(), p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPricingResponse(saved))
}

func (s *Server) handleUpdatePricing(w http.ResponseWriter, r *http.Request) {
	p, err := s.decodePricing(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	updated, err := s.service.UpdatePricing(r.Context(), p.ProductID, p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPricingResponse(updated))
}

func (s *Server) handleDeletePricing(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.DeletePricing(r.Context(), productID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

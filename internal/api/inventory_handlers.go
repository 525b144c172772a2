package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/supplychain-events/internal/domain/inventory"
)

type InventoryHandlers struct {
	svc *inventory.Service
}

func NewInventoryHandlers(svc *inventory.Service) *InventoryHandlers {
	return &InventoryHandlers{svc: svc}
}

func (h *InventoryHandlers) CreateOrUpdate(w http.ResponseWriter, r *http.Request) {
	var req inventory.UpsertInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.CreateOrUpdate(r.Context(), req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *InventoryHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *InventoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if items == nil {
		items = []inventory.Item{}
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *InventoryHandlers) GetBySKU(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.GetBySKU(r.Context(), r.PathValue("sku"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if items == nil {
		items = []inventory.Item{}
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *InventoryHandlers) GetBySKUAndWarehouse(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.GetBySKUAndWarehouse(r.Context(), r.PathValue("sku"), r.PathValue("warehouseId"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *InventoryHandlers) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.AdjustStock(r.Context(), id, req.Delta)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *InventoryHandlers) UpdateThreshold(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Threshold int `json:"threshold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.UpdateThreshold(r.Context(), id, req.Threshold)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *InventoryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/supplychain-events/internal/domain/shipment"
)

type ShipmentHandlers struct {
	svc *shipment.Service
}

func NewShipmentHandlers(svc *shipment.Service) *ShipmentHandlers {
	return &ShipmentHandlers{svc: svc}
}

func (h *ShipmentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req shipment.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sh, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sh)
}

func (h *ShipmentHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	sh, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sh)
}

func (h *ShipmentHandlers) List(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.svc.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if shipments == nil {
		shipments = []shipment.Shipment{}
	}
	respondJSON(w, http.StatusOK, shipments)
}

func (h *ShipmentHandlers) GetByTrackingNumber(w http.ResponseWriter, r *http.Request) {
	sh, err := h.svc.GetByTrackingNumber(r.Context(), r.PathValue("trackingNumber"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sh)
}

func (h *ShipmentHandlers) GetByOrderID(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "orderId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	shipments, err := h.svc.GetByOrderID(r.Context(), orderID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if shipments == nil {
		shipments = []shipment.Shipment{}
	}
	respondJSON(w, http.StatusOK, shipments)
}

func (h *ShipmentHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := shipment.ParseStatus(req.Status)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	sh, err := h.svc.UpdateStatus(r.Context(), id, status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sh)
}

func (h *ShipmentHandlers) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		CurrentLocation string `json:"currentLocation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sh, err := h.svc.UpdateLocation(r.Context(), id, req.CurrentLocation)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sh)
}

func (h *ShipmentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
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

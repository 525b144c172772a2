package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/supplychain-events/internal/domain/inventory"
	"github.com/example/supplychain-events/internal/domain/order"
	"github.com/example/supplychain-events/internal/domain/shipment"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps domain error kinds to client-visible statuses:
// not-found to 404, invalid-argument to 400, anything else to 500.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, inventory.ErrNotFound),
		errors.Is(err, shipment.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrNoItems),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, inventory.ErrNegativeQuantity),
		errors.Is(err, inventory.ErrMissingKey),
		errors.Is(err, shipment.ErrInvalidStatus),
		errors.Is(err, shipment.ErrDuplicateTracking):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

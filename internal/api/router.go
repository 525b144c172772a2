package api

import (
	"net/http"

	"github.com/example/supplychain-events/internal/api/middleware"
	"github.com/example/supplychain-events/internal/auth"
)

type RouterConfig struct {
	Orders    *OrderHandlers
	Inventory *InventoryHandlers
	Shipments *ShipmentHandlers
	Auth      *AuthHandlers
	Tokens    *auth.TokenService
}

// NewRouter wires the gateway routes. Reads are open; mutations require a
// token when a token service is configured.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	protect := middleware.RequireAuth(cfg.Tokens)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.Auth != nil {
		mux.HandleFunc("POST /api/auth/login", cfg.Auth.Login)
	}

	// Orders
	mux.Handle("POST /api/orders", protect(http.HandlerFunc(cfg.Orders.Create)))
	mux.HandleFunc("GET /api/orders", cfg.Orders.List)
	mux.HandleFunc("GET /api/orders/{id}", cfg.Orders.Get)
	mux.Handle("PATCH /api/orders/{id}/status", protect(http.HandlerFunc(cfg.Orders.UpdateStatus)))
	mux.Handle("DELETE /api/orders/{id}", protect(http.HandlerFunc(cfg.Orders.Delete)))

	// Inventory
	mux.Handle("POST /api/inventory", protect(http.HandlerFunc(cfg.Inventory.CreateOrUpdate)))
	mux.HandleFunc("GET /api/inventory", cfg.Inventory.List)
	mux.HandleFunc("GET /api/inventory/item/{id}", cfg.Inventory.Get)
	mux.HandleFunc("GET /api/inventory/{sku}", cfg.Inventory.GetBySKU)
	mux.HandleFunc("GET /api/inventory/{sku}/{warehouseId}", cfg.Inventory.GetBySKUAndWarehouse)
	mux.Handle("PATCH /api/inventory/{id}/adjustStock", protect(http.HandlerFunc(cfg.Inventory.AdjustStock)))
	mux.Handle("PUT /api/inventory/{id}/threshold", protect(http.HandlerFunc(cfg.Inventory.UpdateThreshold)))
	mux.Handle("DELETE /api/inventory/{id}", protect(http.HandlerFunc(cfg.Inventory.Delete)))

	// Shipments
	mux.Handle("POST /api/shipment", protect(http.HandlerFunc(cfg.Shipments.Create)))
	mux.HandleFunc("GET /api/shipment", cfg.Shipments.List)
	mux.HandleFunc("GET /api/shipment/{id}", cfg.Shipments.Get)
	mux.HandleFunc("GET /api/shipment/order/{orderId}", cfg.Shipments.GetByOrderID)
	mux.HandleFunc("GET /api/shipment/track/{trackingNumber}", cfg.Shipments.GetByTrackingNumber)
	mux.Handle("PATCH /api/shipment/{id}/status", protect(http.HandlerFunc(cfg.Shipments.UpdateStatus)))
	mux.Handle("PATCH /api/shipment/{id}/location", protect(http.HandlerFunc(cfg.Shipments.UpdateLocation)))
	mux.Handle("DELETE /api/shipment/{id}", protect(http.HandlerFunc(cfg.Shipments.Delete)))

	return mux
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/merchly/order-system/order-service/application"
	"github.com/merchly/order-system/order-service/domain"
	"github.com/pkg/errors"
)

// OrderHandlers contains order HTTP handlers
type OrderHandlers struct {
	placeOrder     *application.PlaceOrder
	completeOrder  *application.CompleteOrder
	getOrder       *application.GetOrder
	viewOrders     *application.ViewOrders
	updateTracking *application.UpdateTracking
	removeOrder    *application.RemoveOrder
}

// NewOrderHandlers creates new order handlers
func NewOrderHandlers(
	placeOrder *application.PlaceOrder,
	completeOrder *application.CompleteOrder,
	getOrder *application.GetOrder,
	viewOrders *application.ViewOrders,
	updateTracking *application.UpdateTracking,
	removeOrder *application.RemoveOrder,
) *OrderHandlers {
	return &OrderHandlers{
		placeOrder:     placeOrder,
		completeOrder:  completeOrder,
		getOrder:       getOrder,
		viewOrders:     viewOrders,
		updateTracking: updateTracking,
		removeOrder:    removeOrder,
	}
}

// PlaceOrder handles order placement requests
func (h *OrderHandlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var cmd application.PlaceOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.placeOrder.Execute(r.Context(), &cmd)
	if err != nil {
		var stockErr *domain.ItemsNotInStockError
		if errors.As(err, &stockErr) {
			writeJSON(w, http.StatusConflict, map[string]interface{}{
				"error":       stockErr.Error(),
				"unavailable": stockErr.Unavailable,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// CompleteOrder handles order completion requests
func (h *OrderHandlers) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	var cmd application.CompleteOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.OrderID = orderID

	response, err := h.completeOrder.Execute(r.Context(), &cmd)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// GetOrder handles single order retrieval requests
func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	response, err := h.getOrder.Execute(r.Context(), &application.GetOrderQuery{
		OrderID: orderID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// ViewOrders handles per-user order view requests
func (h *OrderHandlers) ViewOrders(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}

	views, err := h.viewOrders.Execute(r.Context(), &application.ViewOrdersQuery{
		UserID: userID,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// UpdateTracking handles tracking status callbacks
func (h *OrderHandlers) UpdateTracking(w http.ResponseWriter, r *http.Request) {
	var cmd application.UpdateTrackingCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.updateTracking.Execute(r.Context(), &cmd); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveOrder handles administrative order deletion requests
func (h *OrderHandlers) RemoveOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	err := h.removeOrder.Execute(r.Context(), &application.RemoveOrderCommand{
		OrderID: orderID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers order routes
func (h *OrderHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.PlaceOrder)
		r.Post("/{id}/complete", h.CompleteOrder)
		r.Get("/{id}", h.GetOrder)
		r.Get("/user/{userID}", h.ViewOrders)
		r.Delete("/{id}", h.RemoveOrder)
	})
	r.Post("/tracking", h.UpdateTracking)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pwalczak/storefront/internal/bus"
	"github.com/pwalczak/storefront/internal/contracts"
	"github.com/pwalczak/storefront/internal/inventory"
)

type StockHandler struct {
	svc     *inventory.Service
	queries *bus.QueryBus
}

func NewStockHandler(svc *inventory.Service, queries *bus.QueryBus) *StockHandler {
	return &StockHandler{svc: svc, queries: queries}
}

func (h *StockHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	rec, err := h.svc.Get(r.Context(), productID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load stock")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Availability answers through the query bus; the same data the typed
// adapters expose to the cart workflow.
func (h *StockHandler) Availability(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil || quantity < 1 {
		writeError(w, http.StatusBadRequest, "quantity must be a positive integer")
		return
	}

	result, err := h.queries.Execute(r.Context(), contracts.StockAvailability{
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check availability")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"productId": productID,
		"quantity":  quantity,
		"available": result,
	})
}

func (h *StockHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == "" || req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	if err := h.svc.SetQuantity(r.Context(), req.ProductID, req.Quantity); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to adjust stock")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

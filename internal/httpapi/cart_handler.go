package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pwalczak/storefront/internal/cart"
	"github.com/pwalczak/storefront/internal/contracts"
)

type CartHandler struct {
	svc *cart.Service
}

func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

type cartView struct {
	*cart.Cart
	ProductNames map[string]string `json:"productNames"`
	Total        string            `json:"total"`
}

func (h *CartHandler) writeCart(w http.ResponseWriter, r *http.Request, c *cart.Cart) {
	if c == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"lines": []cart.Line{}, "productNames": map[string]string{}, "total": "0.00",
		})
		return
	}

	names, err := h.svc.ProductNames(r.Context(), c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load product names")
		return
	}
	total, err := c.Total()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to total cart")
		return
	}
	writeJSON(w, http.StatusOK, cartView{Cart: c, ProductNames: names, Total: total})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	c, err := h.svc.Find(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	h.writeCart(w, r, c)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}

	c, err := h.svc.AddItem(r.Context(), sessionID, req.ProductID, req.Quantity)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeCart(w, r, c)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	productID := chi.URLParam(r, "productId")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	c, err := h.svc.UpdateItemQuantity(r.Context(), sessionID, productID, req.Quantity)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeCart(w, r, c)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	productID := chi.URLParam(r, "productId")

	c, err := h.svc.RemoveItem(r.Context(), sessionID, productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}
	h.writeCart(w, r, c)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if err := h.svc.Clear(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// writeWorkflowError translates the workflow's recoverable errors into
// user-facing responses; everything else is a 500.
func (h *CartHandler) writeWorkflowError(w http.ResponseWriter, err error) {
	var notFound *contracts.ProductNotFoundError
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, "product unavailable")
		return
	}

	var insufficient *cart.InsufficientStockError
	if errors.As(err, &insufficient) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":     "insufficient stock",
			"productId": insufficient.ProductID,
			"requested": insufficient.Requested,
		})
		return
	}

	writeError(w, http.StatusInternalServerError, "failed to update cart")
}

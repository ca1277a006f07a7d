package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pwalczak/storefront/internal/catalog"
)

type ProductHandler struct {
	svc     *catalog.Service
	stock   catalog.StockInfo
	cartQty catalog.CartQuantity
}

func NewProductHandler(svc *catalog.Service, stock catalog.StockInfo, cartQty catalog.CartQuantity) *ProductHandler {
	return &ProductHandler{svc: svc, stock: stock, cartQty: cartQty}
}

type productView struct {
	catalog.Product
	InStock int `json:"inStock"`
	// InCart is filled only when the request carries a sessionId.
	InCart *int `json:"inCart,omitempty"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		qty, err := h.stock.QuantityFor(r.Context(), p.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load stock")
			return
		}
		views = append(views, productView{Product: p, InStock: qty})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	p, err := h.svc.Get(r.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product unavailable")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	qty, err := h.stock.QuantityFor(r.Context(), p.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stock")
		return
	}
	view := productView{Product: p, InStock: qty}

	if sessionID := r.URL.Query().Get("sessionId"); sessionID != "" {
		inCart, err := h.cartQty.QuantityInCart(r.Context(), sessionID, p.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load cart quantity")
			return
		}
		view.InCart = &inCart
	}

	writeJSON(w, http.StatusOK, view)
}

type productRequest struct {
	Name       string  `json:"name"`
	Price      string  `json:"price"`
	CategoryID *string `json:"categoryId"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || req.Price == "" {
		writeError(w, http.StatusBadRequest, "name and price are required")
		return
	}

	p := catalog.Product{Name: req.Name, Price: req.Price, CategoryID: req.CategoryID}
	if err := h.svc.Create(r.Context(), &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	p := catalog.Product{
		ID:         chi.URLParam(r, "productId"),
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: req.CategoryID,
	}
	if err := h.svc.Update(r.Context(), p); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product unavailable")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if err := h.svc.Delete(r.Context(), productID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product unavailable")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *ProductHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	c := catalog.Category{Name: req.Name}
	if err := h.svc.CreateCategory(r.Context(), &c); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"stocklens/internal/middleware"
	"stocklens/internal/product"
	productrepo "stocklens/internal/repository/product"
)

// ProductHandler serves the inventory record CRUD surface.
type ProductHandler struct {
	store productrepo.Store
}

func NewProductHandler(store productrepo.Store) *ProductHandler {
	return &ProductHandler{store: store}
}

// HandleProducts routes /api/products: list on GET, create on POST.
func (h *ProductHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFrom(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "caller identity is required")
		return
	}
	switch r.Method {
	case http.MethodGet:
		items, err := h.store.ListByUser(r.Context(), userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list products")
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		var p product.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		p.UserID = userID
		if strings.TrimSpace(p.ID) == "" {
			p.ID = "P-" + uuid.NewString()
		}
		if err := p.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := h.store.Put(r.Context(), p); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save product")
			return
		}
		writeJSON(w, http.StatusCreated, p)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// HandleProductByID routes /api/products/{id}: get, update, delete.
func (h *ProductHandler) HandleProductByID(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFrom(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "caller identity is required")
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/products/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "product id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := h.store.Get(r.Context(), userID, id)
		if err != nil {
			h.writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut:
		current, err := h.store.Get(r.Context(), userID, id)
		if err != nil {
			h.writeStoreError(w, err)
			return
		}
		updated := current
		if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		// Identity fields are immutable over update.
		updated.ID = current.ID
		updated.UserID = current.UserID
		if err := updated.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := h.store.Put(r.Context(), updated); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save product")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := h.store.Delete(r.Context(), userID, id); err != nil {
			h.writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ProductHandler) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, productrepo.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "storage error")
}

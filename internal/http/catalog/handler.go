package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"kuittipankki/internal/catalog"
	"kuittipankki/internal/database"
)

type Handler struct {
	svc      *catalog.Service
	validate *validator.Validate
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes mounts one subtree per reference-data collection.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Post("/", h.createCategory)
		r.Delete("/{id}", h.deleteEntity(h.svc.DeleteCategory))
	})

	r.Route("/vendors", func(r chi.Router) {
		r.Get("/", h.listVendors)
		r.Post("/", h.createVendor)
		r.Delete("/{id}", h.deleteEntity(h.svc.DeleteVendor))
	})

	r.Route("/payment-methods", func(r chi.Router) {
		r.Get("/", h.listPaymentMethods)
		r.Post("/", h.createPaymentMethod)
		r.Delete("/{id}", h.deleteEntity(h.svc.DeletePaymentMethod))
	})

	r.Route("/tags", func(r chi.Router) {
		r.Get("/", h.listTags)
		r.Post("/", h.createTag)
		r.Delete("/{id}", h.deleteEntity(h.svc.DeleteTag))
	})
}

type namedRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type categoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeNamed(w, r)
	if !ok {
		return
	}

	c, err := h.svc.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
	}

	writeJSON(w, http.StatusOK, resp)
}

type vendorRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type vendorResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// createVendor is an idempotent upsert: posting an existing name
// answers 200 with the existing row instead of 409.
func (h *Handler) createVendor(w http.ResponseWriter, r *http.Request) {
	var req vendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	v, err := h.svc.CreateVendor(r.Context(), req.Name, req.Address, req.Phone)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, vendorResponse{ID: v.ID, Name: v.Name, Address: v.Address, Phone: v.Phone})
}

func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.svc.ListVendors(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]vendorResponse, len(vendors))
	for i, v := range vendors {
		resp[i] = vendorResponse{ID: v.ID, Name: v.Name, Address: v.Address, Phone: v.Phone}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) createPaymentMethod(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeNamed(w, r)
	if !ok {
		return
	}

	pm, err := h.svc.CreatePaymentMethod(r.Context(), req.Name, req.Description)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, categoryResponse{ID: pm.ID, Name: pm.Name, Description: pm.Description})
}

func (h *Handler) listPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.svc.ListPaymentMethods(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]categoryResponse, len(methods))
	for i, pm := range methods {
		resp[i] = categoryResponse{ID: pm.ID, Name: pm.Name, Description: pm.Description}
	}

	writeJSON(w, http.StatusOK, resp)
}

type tagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) createTag(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeNamed(w, r)
	if !ok {
		return
	}

	t, err := h.svc.CreateTag(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tagResponse{ID: t.ID, Name: t.Name})
}

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.ListTags(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]tagResponse, len(tags))
	for i, t := range tags {
		resp[i] = tagResponse{ID: t.ID, Name: t.Name}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) deleteEntity(del func(ctx context.Context, id int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := del(r.Context(), id); err != nil {
			h.writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) decodeNamed(w http.ResponseWriter, r *http.Request) (namedRequest, bool) {
	var req namedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return req, false
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return req, false
	}

	return req, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, catalog.ErrConflict):
		http.Error(w, "name already exists", http.StatusConflict)
	case errors.Is(err, catalog.ErrInUse):
		http.Error(w, "still referenced by receipts", http.StatusConflict)
	case database.IsTransient(err):
		http.Error(w, "storage temporarily unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

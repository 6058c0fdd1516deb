package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"kuittipankki/internal/auth"
	"kuittipankki/internal/database"
	"kuittipankki/internal/filestore"
	"kuittipankki/internal/receipt"
)

type Handler struct {
	svc       *receipt.Service
	files     *filestore.Store
	maxUpload int64
	validate  *validator.Validate
}

func NewHandler(svc *receipt.Service, files *filestore.Store, maxUpload int64) *Handler {
	return &Handler{
		svc:       svc,
		files:     files,
		maxUpload: maxUpload,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/tags", h.listTags)
	r.Put("/{id}/tags", h.replaceTags)
	r.Post("/{id}/tags", h.addTags)
	r.Get("/{id}/items", h.listItems)
	r.Put("/{id}/items", h.replaceItems)
	r.Post("/{id}/file", h.uploadFile)
	r.Get("/{id}/file", h.downloadFile)
}

type itemRequest struct {
	Name     string          `json:"name" validate:"required"`
	Quantity int             `json:"quantity" validate:"gte=1"`
	Price    decimal.Decimal `json:"price"`
}

type createReceiptRequest struct {
	Description     string          `json:"description" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Date            string          `json:"date" validate:"required,datetime=2006-01-02"`
	CategoryID      int64           `json:"category_id" validate:"required"`
	VendorID        *int64          `json:"vendor_id"`
	PaymentMethodID int64           `json:"payment_method_id" validate:"required"`
	TagIDs          []int64         `json:"tag_ids"`
	Items           []itemRequest   `json:"items" validate:"dive"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	date, _ := time.Parse(time.DateOnly, req.Date)

	items := make([]receipt.ItemParams, len(req.Items))
	for i, it := range req.Items {
		items[i] = receipt.ItemParams{Name: it.Name, Quantity: it.Quantity, Price: it.Price}
	}

	rc, err := h.svc.Create(r.Context(), userID, receipt.CreateParams{
		Description:     req.Description,
		Amount:          req.Amount,
		Date:            date,
		CategoryID:      req.CategoryID,
		VendorID:        req.VendorID,
		PaymentMethodID: req.PaymentMethodID,
		TagIDs:          req.TagIDs,
		Items:           items,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(rc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	filter, err := parseListFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	receipts, err := h.svc.List(r.Context(), userID, filter)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(receipts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.receiptRef(w, r)
	if !ok {
		return
	}

	rc, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateReceiptRequest struct {
	Description     string          `json:"description" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Date            string          `json:"date" validate:"required,datetime=2006-01-02"`
	CategoryID      int64           `json:"category_id" validate:"required"`
	VendorID        *int64          `json:"vendor_id"`
	PaymentMethodID int64           `json:"payment_method_id" validate:"required"`
}

// update replaces the whole editable row.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.receiptRef(w, r)
	if !ok {
		return
	}

	var req updateReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	date, _ := time.Parse(time.DateOnly, req.Date)

	rc, err := h.svc.Update(r.Context(), userID, id, receipt.UpdateParams{
		Description:     req.Description,
		Amount:          req.Amount,
		Date:            date,
		CategoryID:      req.CategoryID,
		VendorID:        req.VendorID,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.receiptRef(w, r)
	if !ok {
		return
	}

	// Fetch first so an attached file can be cleaned up after the row
	// and its dependents are gone.
	rc, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		h.writeError(w, err)
		return
	}

	if rc.Filename != "" {
		if err := h.files.Remove(rc.Filename); err != nil {
			slog.Error("failed to remove receipt file", "reference", rc.Filename, "error", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

type tagsRequest struct {
	TagIDs []int64 `json:"tag_ids"`
}

func (h *Handler) addTags(w http.ResponseWriter, r *http.Request) {
	h.tagsOp(w, r, h.svc.AddTags)
}

func (h *Handler) replaceTags(w http.ResponseWriter, r *http.Request) {
	h.tagsOp(w, r, h.svc.ReplaceTags)
}

func (h *Handler) tagsOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, receiptID int64, tagIDs []int64) error) {
	userID, id, ok := h.receiptRef(w, r)
	if !ok {
		return
	}

	var req tagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := op(r.Context(), userID, id, req.TagIDs); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.receiptRef(w, r)
	if !ok {
		return
	}

	tags, err := h.svc.ListTags(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toTagResponseList(tags)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type itemsRequest struct {
	Items []itemRequest `json:"items" validate:"dive"`
}

func (h *Handler) replaceItems(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.receiptRef(w, r)
	if !ok {
		return
	}

	var req itemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	items := make([]receipt.ItemParams, len(req.Items))
	for i, it := range req.Items {
		items[i] = receipt.ItemParams{Name: it.Name, Quantity: it.Quantity, Price: it.Price}
	}

	if err := h.svc.ReplaceItems(r.Context(), userID, id, items); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.receiptRef(w, r)
	if !ok {
		return
	}

	items, err := h.svc.ListItems(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toItemResponseList(items)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.receiptRef(w, r)
	if !ok {
		return
	}

	// Confirm ownership before touching storage.
	if _, err := h.svc.Get(r.Context(), userID, id); err != nil {
		h.writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		http.Error(w, "upload too large or malformed", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	reference, err := h.files.Save(header.Filename, file)
	if err != nil {
		slog.Error("failed to store upload", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if err := h.svc.AttachFile(r.Context(), userID, id, reference); err != nil {
		if removeErr := h.files.Remove(reference); removeErr != nil {
			slog.Error("failed to remove orphaned upload", "reference", reference, "error", removeErr)
		}

		h.writeError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(map[string]string{"filename": reference}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.receiptRef(w, r)
	if !ok {
		return
	}

	rc, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if rc.Filename == "" {
		http.Error(w, "receipt has no file", http.StatusNotFound)
		return
	}

	f, err := h.files.Open(rc.Filename)
	if err != nil {
		http.Error(w, "file not available", http.StatusNotFound)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(rc.Filename))

	if _, err := io.Copy(w, f); err != nil {
		slog.Error("failed to stream file", "error", err)
	}
}

func (h *Handler) receiptRef(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, ok := currentUser(w, r)
	if !ok {
		return 0, 0, false
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, 0, false
	}

	return userID, id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, receipt.ErrNotFound):
		http.Error(w, "receipt not found", http.StatusNotFound)
	case errors.Is(err, receipt.ErrNegativeAmount):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, receipt.ErrInvalidReference):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case database.IsTransient(err):
		http.Error(w, "storage temporarily unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}

	return userID, ok
}

func parseListFilter(r *http.Request) (receipt.ListFilter, error) {
	var filter receipt.ListFilter

	if s := r.URL.Query().Get("category_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return filter, errors.New("invalid category_id")
		}

		filter.CategoryID = &id
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, errors.New("invalid start_date")
		}

		filter.StartDate = &t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, errors.New("invalid end_date")
		}

		filter.EndDate = &t
	}

	return filter, nil
}

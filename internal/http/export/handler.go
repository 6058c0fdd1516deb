package export

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"kuittipankki/internal/auth"
	"kuittipankki/internal/export"
	"kuittipankki/internal/receipt"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.exportCSV)
}

// exportCSV streams matching receipts as CSV. The same query parameters
// as the receipt list endpoint narrow the output.
func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="receipts.csv"`)

	if err := h.svc.Export(r.Context(), userID, filter, w); err != nil {
		// Headers are gone by now; all that is left is to log.
		slog.Error("failed to export receipts", "user_id", userID, "error", err)
	}
}

func parseFilter(r *http.Request) (receipt.ListFilter, error) {
	var filter receipt.ListFilter

	q := r.URL.Query()

	if raw := q.Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, err
		}

		filter.CategoryID = &id
	}

	if raw := q.Get("start_date"); raw != "" {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, err
		}

		filter.StartDate = &t
	}

	if raw := q.Get("end_date"); raw != "" {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, err
		}

		filter.EndDate = &t
	}

	return filter, nil
}

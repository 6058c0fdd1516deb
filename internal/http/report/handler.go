package report

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"kuittipankki/internal/auth"
	"kuittipankki/internal/database"
	"kuittipankki/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/spending-by-category", h.spending(h.svc.SpendingByCategory))
	r.Get("/spending-by-vendor", h.spending(h.svc.SpendingByVendor))
	r.Get("/summary", h.summary)
}

type spendingResponse struct {
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

type spendingFunc func(ctx context.Context, userID int64, start, end time.Time) ([]report.SpendingRow, error)

func (h *Handler) spending(run spendingFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		start, end, err := parseRange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rows, err := run(r.Context(), userID, start, end)
		if err != nil {
			h.writeError(w, err)
			return
		}

		resp := make([]spendingResponse, len(rows))
		for i, row := range rows {
			resp[i] = spendingResponse{Label: row.Label, Total: row.Total}
		}

		writeJSON(w, resp)
	}
}

type summaryResponse struct {
	TotalSpending    decimal.Decimal        `json:"total_spending"`
	MostUsedCategory *categoryUsageResponse `json:"most_used_category"`
}

type categoryUsageResponse struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	total, err := h.svc.TotalSpending(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	mostUsed, err := h.svc.MostUsedCategory(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := summaryResponse{TotalSpending: total}
	if mostUsed != nil {
		resp.MostUsedCategory = &categoryUsageResponse{Name: mostUsed.Name, Count: mostUsed.Count}
	}

	writeJSON(w, resp)
}

func parseRange(r *http.Request) (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, r.URL.Query().Get("start_date"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("start_date must be YYYY-MM-DD")
	}

	end, err := time.Parse(time.DateOnly, r.URL.Query().Get("end_date"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("end_date must be YYYY-MM-DD")
	}

	return start, end, nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, report.ErrInvalidRange):
		http.Error(w, "start_date must not be after end_date", http.StatusUnprocessableEntity)
	case database.IsTransient(err):
		http.Error(w, "storage temporarily unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

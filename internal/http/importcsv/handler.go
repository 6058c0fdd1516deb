package importcsv

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kuittipankki/internal/auth"
	"kuittipankki/internal/csvimport"
	"kuittipankki/internal/database"
)

type Handler struct {
	svc       *csvimport.Service
	maxUpload int64
}

func NewHandler(svc *csvimport.Service, maxUpload int64) *Handler {
	return &Handler{svc: svc, maxUpload: maxUpload}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type rowErrorResponse struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

type importResponse struct {
	Created int                `json:"created"`
	Skipped []rowErrorResponse `json:"skipped"`
}

// importCSV accepts the CSV either as a multipart "file" part or as the
// raw request body.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := h.csvBody(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer body.Close()

	result, err := h.svc.Import(r.Context(), userID, body)
	if err != nil {
		switch {
		case errors.Is(err, csvimport.ErrMissingHeader):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case database.IsTransient(err):
			http.Error(w, "storage temporarily unavailable", http.StatusServiceUnavailable)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	resp := importResponse{
		Created: len(result.Created),
		Skipped: make([]rowErrorResponse, len(result.Skipped)),
	}
	for i, re := range result.Skipped {
		resp.Skipped[i] = rowErrorResponse{Line: re.Line, Error: re.Err.Error()}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) csvBody(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return nil, errors.New("invalid multipart form")
	}

	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New("missing file part")
	}

	return f, nil
}

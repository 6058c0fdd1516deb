package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"kuittipankki/internal/auth"
	authnHandler "kuittipankki/internal/http/authn"
	catalogHandler "kuittipankki/internal/http/catalog"
	exportHandler "kuittipankki/internal/http/export"
	importHandler "kuittipankki/internal/http/importcsv"
	receiptHandler "kuittipankki/internal/http/receipt"
	reportHandler "kuittipankki/internal/http/report"
)

func New(
	tokens *auth.Manager,
	authnV1 *authnHandler.Handler,
	receiptsV1 *receiptHandler.Handler,
	catalogV1 *catalogHandler.Handler,
	reportsV1 *reportHandler.Handler,
	importV1 *importHandler.Handler,
	exportV1 *exportHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authnV1.Routes(r)
		})

		// Everything below requires an authenticated user.
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware)

			r.Route("/receipts", receiptsV1.Routes)
			r.Route("/import", importV1.Routes)
			r.Route("/export", exportV1.Routes)
			r.Route("/reports", reportsV1.Routes)

			catalogV1.Routes(r)
		})
	})

	return router
}

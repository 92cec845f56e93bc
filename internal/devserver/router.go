package devserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds the dev server's router over the given store. Paths,
// payloads and status codes mirror the real backend.
func NewRouter(cfg *Config, store *Store) http.Handler {
	auth := newSessionAuth(cfg.JWTSecret, cfg.TokenTTL)
	h := &handlers{store: store, auth: auth}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true, // session cookie travels on cross-origin calls
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10, credential endpoints only.
	credentialRL := newRateLimiter(rate.Limit(5), 10)

	// Public routes.
	r.With(credentialRL.limit).Post("/users/login", h.Login)
	r.With(credentialRL.limit).Post("/users/create", h.CreateUser)
	r.Get("/products/", h.ListProducts)

	// Authenticated routes.
	r.Group(func(r chi.Router) {
		r.Use(requireUser(store, auth))

		r.Get("/users/me", h.Me)
		r.Post("/users/logout", h.Logout)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.ListNotifications)
			r.Post("/create_notification", h.CreateNotification)
			r.Patch("/{id}/update_read", h.UpdateNotificationRead)
			r.Delete("/{id}/delete", h.DeleteNotification)
		})

		r.Get("/products/{id}", h.GetProduct)
		r.Get("/products/{id}/user-products", h.UserProducts)
		r.Post("/products/create-product", h.CreateProduct)

		r.Route("/price-history", func(r chi.Router) {
			r.Get("/", h.ListPriceHistory)
			r.Get("/search-price-history", h.SearchPriceHistory)
		})
	})

	return r
}

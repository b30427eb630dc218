package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes constructs the router served identically by both the plaintext and
// the TLS listener.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	allowed := a.config.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "token"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))

	r.Use(httprate.Limit(100, time.Minute))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, nil)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// ping answers every method
	r.HandleFunc("/ping", a.handlePing)

	r.Post("/users", a.handleCreateUser)
	r.Get("/users", a.handleGetUser)
	r.Put("/users", a.handleUpdateUser)
	r.Delete("/users", a.handleDeleteUser)

	r.Post("/tokens", a.handleCreateToken)
	r.Get("/tokens", a.handleGetToken)
	r.Put("/tokens", a.handleExtendToken)
	r.Delete("/tokens", a.handleDeleteToken)

	r.Get("/menu", a.handleGetMenu)

	r.Post("/cart", a.handleAddCartItem)
	r.Get("/cart", a.handleGetCart)

	r.Post("/order", a.handlePlaceOrder)

	return r
}

func (a *API) handlePing(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, nil)
}

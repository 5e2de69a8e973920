package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/TmanScript/umoja-swap-collection/internal/usecase"
	"github.com/TmanScript/umoja-swap-collection/pkg/logger"
)

// Handlers bundles the endpoint groups the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Swap       *SwapHandler
	Collection *CollectionHandler
	History    *HistoryHandler
	Stats      *StatsHandler
}

// NewRouter assembles the full HTTP surface: public auth and health
// endpoints, the authenticated API, and the Prometheus scrape target.
func NewRouter(h Handlers, auth *usecase.AuthUsecase, allowedOrigins []string, log logger.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(Recover(log))

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(Authenticate(auth))

	protected.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)

	swap := protected.PathPrefix("/swap").Subrouter()
	swap.HandleFunc("", h.Swap.State).Methods(http.MethodGet)
	swap.HandleFunc("/customers", h.Swap.SearchCustomers).Methods(http.MethodGet)
	swap.HandleFunc("/customer", h.Swap.SelectCustomer).Methods(http.MethodPost)
	swap.HandleFunc("/old-device", h.Swap.SelectOldDevice).Methods(http.MethodPost)
	swap.HandleFunc("/scan", h.Swap.ScanNewDevice).Methods(http.MethodPost)
	swap.HandleFunc("/confirm", h.Swap.Confirm).Methods(http.MethodPost)
	swap.HandleFunc("/back", h.Swap.Back).Methods(http.MethodPost)
	swap.HandleFunc("/reset", h.Swap.Reset).Methods(http.MethodPost)

	collection := protected.PathPrefix("/collection").Subrouter()
	collection.HandleFunc("", h.Collection.State).Methods(http.MethodGet)
	collection.HandleFunc("/router", h.Collection.ScanRouter).Methods(http.MethodPost)
	collection.HandleFunc("/router", h.Collection.ClearRouter).Methods(http.MethodDelete)
	collection.HandleFunc("/sim", h.Collection.ScanSIM).Methods(http.MethodPost)
	collection.HandleFunc("/sim", h.Collection.ClearSIM).Methods(http.MethodDelete)
	collection.HandleFunc("/confirm", h.Collection.Confirm).Methods(http.MethodPost)

	history := protected.PathPrefix("/history").Subrouter()
	history.HandleFunc("/swaps", h.History.Swaps).Methods(http.MethodGet)
	history.HandleFunc("/collections", h.History.Collections).Methods(http.MethodGet)
	history.HandleFunc("/activity", h.History.Activity).Methods(http.MethodGet)

	protected.HandleFunc("/stats/collections", h.Stats.MonthlyCollections).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}

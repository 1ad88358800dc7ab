package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	panelHandler *PanelHandler,
	reportHandler *ReportHandler,
	sessionMiddleware func(http.Handler) http.Handler,
	allowedOrigins []string,
) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint (no session required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"image-panel"}`))
	}).Methods(http.MethodGet)

	// Everything else belongs to a panel session
	panel := router.PathPrefix("").Subrouter()
	panel.Use(sessionMiddleware)

	// Browser panel
	panel.HandleFunc("/", panelHandler.Index).Methods(http.MethodGet)
	panel.HandleFunc("/process", panelHandler.Process).Methods(http.MethodPost)
	panel.HandleFunc("/records/{index:[0-9]+}/download/{format}", panelHandler.Download).Methods(http.MethodGet)
	panel.HandleFunc("/report", reportHandler.Export).Methods(http.MethodPost)
	panel.HandleFunc("/report/preview", reportHandler.Preview).Methods(http.MethodGet)
	panel.HandleFunc("/report/download", reportHandler.Download).Methods(http.MethodGet)

	// JSON API
	api := panel.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/operations", panelHandler.Operations).Methods(http.MethodGet)
	api.HandleFunc("/process", panelHandler.APIProcess).Methods(http.MethodPost)
	api.HandleFunc("/records", panelHandler.Records).Methods(http.MethodGet)
	api.HandleFunc("/report", reportHandler.APIExport).Methods(http.MethodPost)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			"X-Report-Archive-Path",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}

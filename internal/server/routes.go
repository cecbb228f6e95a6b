package server

import (
	"net/http"

	"stocklens/internal/handler"
	"stocklens/internal/middleware"
)

func NewMux(
	productHandler *handler.ProductHandler,
	insightsHandler *handler.InsightsHandler,
	eventsHandler *handler.EventsHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/products", productHandler.HandleProducts)
	mux.HandleFunc("/api/products/", productHandler.HandleProductByID)
	mux.HandleFunc("/api/insights", insightsHandler.HandleGenerate)
	mux.HandleFunc("/api/insights/events", eventsHandler.HandleEventsWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return middleware.CORS(middleware.Identity(mux))
}

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shopstock/shopstock/internal/sales/usecase/command"
	"github.com/shopstock/shopstock/internal/sales/usecase/query"
	userhttp "github.com/shopstock/shopstock/internal/user/delivery/http"
	"github.com/shopstock/shopstock/pkg/logger"
)

var (
	saleHTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopstock_sale_http_requests_total",
			Help: "Total number of HTTP requests to the sale endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	saleHTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopstock_sale_http_request_duration_seconds",
			Help:    "Duration of HTTP requests to the sale endpoints",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

type SaleHandler struct {
	recordHandler *command.RecordSaleHandler
	listHandler   *query.ListSalesHandler
	getHandler    *query.GetSaleHandler
}

func NewSaleHandler(
	recordHandler *command.RecordSaleHandler,
	listHandler *query.ListSalesHandler,
	getHandler *query.GetSaleHandler,
) *SaleHandler {
	return &SaleHandler{
		recordHandler: recordHandler,
		listHandler:   listHandler,
		getHandler:    getHandler,
	}
}

func (h *SaleHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/sales", h.metricsMiddleware("list_sales", userhttp.AuthMiddleware(h.ListSales))).Methods("GET")
	router.HandleFunc("/api/sales", h.metricsMiddleware("record_sale", userhttp.AuthMiddleware(h.RecordSale))).Methods("POST")
	router.HandleFunc("/api/sales/{id}", h.metricsMiddleware("get_sale", userhttp.AuthMiddleware(h.GetSale))).Methods("GET")
}

func (h *SaleHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		saleHTTPRequestDuration.WithLabelValues(r.Method, endpoint).Observe(duration)
		saleHTTPRequestsTotal.WithLabelValues(r.Method, endpoint, http.StatusText(wrapped.statusCode)).Inc()
	}
}

func (h *SaleHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Items []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RecordSaleCommand{UserID: userID}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, command.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	sale, err := h.recordHandler.Handle(cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to record sale")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, sale)
}

func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	q := query.ListSalesQuery{UserID: userID}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid from date")
			return
		}
		q.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid to date")
			return
		}
		q.To = t
	}

	sales, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list sales")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, sales)
}

func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sale, err := h.getHandler.Handle(query.GetSaleQuery{
		UserID: userID,
		SaleID: mux.Vars(r)["id"],
	})
	if err != nil {
		respondError(w, http.StatusNotFound, "Sale not found")
		return
	}

	respondJSON(w, http.StatusOK, sale)
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shopstock/shopstock/internal/analysis/domain"
	"github.com/shopstock/shopstock/internal/analysis/usecase/query"
	"github.com/shopstock/shopstock/internal/store"
	userhttp "github.com/shopstock/shopstock/internal/user/delivery/http"
	"github.com/shopstock/shopstock/pkg/logger"
)

var (
	analysisHTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopstock_analysis_http_requests_total",
			Help: "Total number of HTTP requests to the analysis endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	analysisHTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopstock_analysis_http_request_duration_seconds",
			Help:    "Duration of HTTP requests to the analysis endpoints",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// AnalysisHandler serializes the caller's working set and feeds it to
// the model-backed flows.
type AnalysisHandler struct {
	optimalStockHandler *query.OptimalStockHandler
	salesTrendsHandler  *query.SalesTrendsHandler
	marketTrendsHandler *query.MarketTrendsHandler
	reportHandler       *query.GenerateReportHandler
	stores              *store.Manager
}

func NewAnalysisHandler(
	optimalStockHandler *query.OptimalStockHandler,
	salesTrendsHandler *query.SalesTrendsHandler,
	marketTrendsHandler *query.MarketTrendsHandler,
	reportHandler *query.GenerateReportHandler,
	stores *store.Manager,
) *AnalysisHandler {
	return &AnalysisHandler{
		optimalStockHandler: optimalStockHandler,
		salesTrendsHandler:  salesTrendsHandler,
		marketTrendsHandler: marketTrendsHandler,
		reportHandler:       reportHandler,
		stores:              stores,
	}
}

func (h *AnalysisHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/analysis/optimal-stock", h.metricsMiddleware("optimal_stock", userhttp.AuthMiddleware(h.OptimalStock))).Methods("POST")
	router.HandleFunc("/api/analysis/trends", h.metricsMiddleware("trends", userhttp.AuthMiddleware(h.SalesTrends))).Methods("POST")
	router.HandleFunc("/api/analysis/market-trends", h.metricsMiddleware("market_trends", userhttp.AuthMiddleware(h.MarketTrends))).Methods("POST")
	router.HandleFunc("/api/analysis/report", h.metricsMiddleware("report", userhttp.AuthMiddleware(h.GenerateReport))).Methods("POST")
}

func (h *AnalysisHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		analysisHTTPRequestDuration.WithLabelValues(r.Method, endpoint).Observe(duration)
		analysisHTTPRequestsTotal.WithLabelValues(r.Method, endpoint, http.StatusText(wrapped.statusCode)).Inc()
	}
}

func (h *AnalysisHandler) OptimalStock(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ProductName string `json:"productName"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s, ok := h.stores.Get(userID)
	if !ok {
		respondError(w, http.StatusUnauthorized, "No active session")
		return
	}

	salesData, stockLevels, err := serializeWorkingSet(s)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to serialize shop data")
		return
	}

	result, err := h.optimalStockHandler.Handle(r.Context(), domain.OptimalStockRequest{
		SalesData:          salesData,
		CurrentStockLevels: stockLevels,
		ProductName:        req.ProductName,
	})
	if err != nil {
		respondAnalysisError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *AnalysisHandler) SalesTrends(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		MarketConditions string `json:"marketConditions"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s, ok := h.stores.Get(userID)
	if !ok {
		respondError(w, http.StatusUnauthorized, "No active session")
		return
	}

	salesData, stockLevels, err := serializeWorkingSet(s)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to serialize shop data")
		return
	}

	result, err := h.salesTrendsHandler.Handle(r.Context(), domain.SalesTrendsRequest{
		SalesHistory:       salesData,
		CurrentStockLevels: stockLevels,
		MarketConditions:   req.MarketConditions,
	})
	if err != nil {
		respondAnalysisError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *AnalysisHandler) MarketTrends(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.marketTrendsHandler.Handle(r.Context(), domain.MarketTrendsRequest{
		Query: req.Query,
	})
	if err != nil {
		respondAnalysisError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *AnalysisHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		From string `json:"from"`
		To   string `json:"to"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	from, err := time.Parse(time.RFC3339, req.From)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid from date")
		return
	}
	to, err := time.Parse(time.RFC3339, req.To)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid to date")
		return
	}

	s, ok := h.stores.Get(userID)
	if !ok {
		respondError(w, http.StatusUnauthorized, "No active session")
		return
	}

	var inRange []interface{}
	for _, sale := range s.Sales() {
		if sale.Date.Before(from) || sale.Date.After(to) {
			continue
		}
		inRange = append(inRange, sale)
	}

	products, err := json.Marshal(s.Products())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to serialize shop data")
		return
	}
	sales, err := json.Marshal(inRange)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to serialize shop data")
		return
	}

	result, err := h.reportHandler.Handle(r.Context(), domain.ReportRequest{
		Products: string(products),
		Sales:    string(sales),
		DateRange: domain.DateRange{
			From: req.From,
			To:   req.To,
		},
	})
	if err != nil {
		respondAnalysisError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// serializeWorkingSet renders the session's sales history and current
// stock levels as the JSON strings the flow prompts embed.
func serializeWorkingSet(s *store.Store) (salesData, stockLevels string, err error) {
	sales, err := json.Marshal(s.Sales())
	if err != nil {
		return "", "", err
	}

	type stockLevel struct {
		ProductID string `json:"productId"`
		Name      string `json:"name"`
		Stock     int    `json:"stock"`
	}
	levels := make([]stockLevel, 0)
	for _, p := range s.Products() {
		levels = append(levels, stockLevel{ProductID: p.ID, Name: p.Name, Stock: p.Stock})
	}
	stocks, err := json.Marshal(levels)
	if err != nil {
		return "", "", err
	}

	return string(sales), string(stocks), nil
}

func respondAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	var analysisErr *domain.Error
	if errors.As(err, &analysisErr) {
		logger.Error(r.Context()).Err(err).Msg("Analysis flow failed")
		respondError(w, http.StatusBadGateway, analysisErr.Error())
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
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

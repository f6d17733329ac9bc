package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shopstock/shopstock/internal/inventory/usecase/command"
	"github.com/shopstock/shopstock/internal/inventory/usecase/query"
	userhttp "github.com/shopstock/shopstock/internal/user/delivery/http"
	"github.com/shopstock/shopstock/pkg/logger"
)

var (
	productHTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopstock_product_http_requests_total",
			Help: "Total number of HTTP requests to the product endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	productHTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopstock_product_http_request_duration_seconds",
			Help:    "Duration of HTTP requests to the product endpoints",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

type ProductHandler struct {
	addHandler           *command.AddProductHandler
	updateHandler        *command.UpdateProductHandler
	deleteHandler        *command.DeleteProductHandler
	decreaseStockHandler *command.DecreaseStockHandler
	getHandler           *query.GetProductHandler
	listHandler          *query.ListProductsHandler
	lowStockHandler      *query.ListLowStockHandler
	statsHandler         *query.GetStatsHandler
}

func NewProductHandler(
	addHandler *command.AddProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	decreaseStockHandler *command.DecreaseStockHandler,
	getHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	lowStockHandler *query.ListLowStockHandler,
	statsHandler *query.GetStatsHandler,
) *ProductHandler {
	return &ProductHandler{
		addHandler:           addHandler,
		updateHandler:        updateHandler,
		deleteHandler:        deleteHandler,
		decreaseStockHandler: decreaseStockHandler,
		getHandler:           getHandler,
		listHandler:          listHandler,
		lowStockHandler:      lowStockHandler,
		statsHandler:         statsHandler,
	}
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metricsMiddleware("list_products", userhttp.AuthMiddleware(h.ListProducts))).Methods("GET")
	router.HandleFunc("/api/products", h.metricsMiddleware("add_product", userhttp.AuthMiddleware(h.AddProduct))).Methods("POST")
	router.HandleFunc("/api/products/low-stock", h.metricsMiddleware("low_stock", userhttp.AuthMiddleware(h.ListLowStock))).Methods("GET")
	router.HandleFunc("/api/products/stats", h.metricsMiddleware("stats", userhttp.AuthMiddleware(h.GetStats))).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("get_product", userhttp.AuthMiddleware(h.GetProduct))).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("update_product", userhttp.AuthMiddleware(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("delete_product", userhttp.AuthMiddleware(h.DeleteProduct))).Methods("DELETE")
	router.HandleFunc("/api/products/{id}/decrease-stock", h.metricsMiddleware("decrease_stock", userhttp.AuthMiddleware(h.DecreaseStock))).Methods("POST")
}

func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		productHTTPRequestDuration.WithLabelValues(r.Method, endpoint).Observe(duration)
		productHTTPRequestsTotal.WithLabelValues(r.Method, endpoint, http.StatusText(wrapped.statusCode)).Inc()
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	products, err := h.listHandler.Handle(query.ListProductsQuery{
		UserID:   userID,
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name              string  `json:"name"`
		Description       string  `json:"description"`
		Price             float64 `json:"price"`
		Stock             int     `json:"stock"`
		LowStockThreshold int     `json:"lowStockThreshold"`
		Category          string  `json:"category"`
		ImageURL          string  `json:"imageUrl"`
		Unit              string  `json:"unit"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.addHandler.Handle(command.AddProductCommand{
		UserID:            userID,
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		Category:          req.Category,
		ImageURL:          req.ImageURL,
		Unit:              req.Unit,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to add product")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	product, err := h.getHandler.Handle(query.GetProductQuery{
		UserID:    userID,
		ProductID: mux.Vars(r)["id"],
	})
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name              string  `json:"name"`
		Description       string  `json:"description"`
		Price             float64 `json:"price"`
		Stock             int     `json:"stock"`
		LowStockThreshold int     `json:"lowStockThreshold"`
		Category          string  `json:"category"`
		ImageURL          string  `json:"imageUrl"`
		Unit              string  `json:"unit"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.updateHandler.Handle(command.UpdateProductCommand{
		UserID:            userID,
		ProductID:         mux.Vars(r)["id"],
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		Category:          req.Category,
		ImageURL:          req.ImageURL,
		Unit:              req.Unit,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update product")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteProductCommand{
		UserID:    userID,
		ProductID: mux.Vars(r)["id"],
	}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to delete product")
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func (h *ProductHandler) DecreaseStock(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.decreaseStockHandler.Handle(command.DecreaseStockCommand{
		UserID:    userID,
		ProductID: mux.Vars(r)["id"],
		Quantity:  req.Quantity,
	}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to decrease stock")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Stock decreased"})
}

func (h *ProductHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	products, err := h.lowStockHandler.Handle(query.ListLowStockQuery{UserID: userID})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list low stock products")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := h.statsHandler.Handle(query.GetStatsQuery{UserID: userID})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to compute catalog stats")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, stats)
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

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shopstock/shopstock/internal/user/usecase/command"
	"github.com/shopstock/shopstock/internal/user/usecase/query"
	"github.com/shopstock/shopstock/pkg/logger"
)

var (
	userHTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopstock_user_http_requests_total",
			Help: "Total number of HTTP requests to the user endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	userHTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopstock_user_http_request_duration_seconds",
			Help:    "Duration of HTTP requests to the user endpoints",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

type UserHandler struct {
	registerHandler      *command.RegisterUserHandler
	loginHandler         *command.LoginUserHandler
	logoutHandler        *command.LogoutUserHandler
	updateProfileHandler *command.UpdateProfileHandler
	getUserHandler       *query.GetUserHandler
}

func NewUserHandler(
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	logoutHandler *command.LogoutUserHandler,
	updateProfileHandler *command.UpdateProfileHandler,
	getUserHandler *query.GetUserHandler,
) *UserHandler {
	return &UserHandler{
		registerHandler:      registerHandler,
		loginHandler:         loginHandler,
		logoutHandler:        logoutHandler,
		updateProfileHandler: updateProfileHandler,
		getUserHandler:       getUserHandler,
	}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.metricsMiddleware("register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", h.metricsMiddleware("login", h.Login)).Methods("POST")
	router.HandleFunc("/auth/logout", h.metricsMiddleware("logout", AuthMiddleware(h.Logout))).Methods("POST")
	router.HandleFunc("/users/me", h.metricsMiddleware("get_profile", AuthMiddleware(h.GetProfile))).Methods("GET")
	router.HandleFunc("/users/me", h.metricsMiddleware("update_profile", AuthMiddleware(h.UpdateProfile))).Methods("PUT")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}

func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		userHTTPRequestDuration.WithLabelValues(r.Method, endpoint).Observe(duration)
		userHTTPRequestsTotal.WithLabelValues(r.Method, endpoint, http.StatusText(wrapped.statusCode)).Inc()
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RegisterUserCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := h.registerHandler.Handle(cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to register user")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	}

	resp, err := h.loginHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Warn(r.Context()).Msg("Login failed")
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.logoutHandler.Handle(command.LogoutUserCommand{UserID: userID}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to log out user")
		respondError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{ID: userID})
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name     string `json:"name"`
		Picture  string `json:"picture"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateProfileCommand{
		ID:       userID,
		Name:     req.Name,
		Picture:  req.Picture,
		Password: req.Password,
	}

	user, err := h.updateProfileHandler.Handle(cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update profile")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "shopstock"})
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

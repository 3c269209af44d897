package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/pillow12360/carfreind-back/internal/domain"
	"github.com/pillow12360/carfreind-back/internal/usecase"
)

type Server struct {
	mux       *chi.Mux
	customers *usecase.CustomerUC
}

func New(customers *usecase.CustomerUC, allowedOrigins []string) http.Handler {
	s := &Server{mux: chi.NewRouter(), customers: customers}
	s.routes(allowedOrigins)
	return s.mux
}

func (s *Server) routes(allowedOrigins []string) {
	r := s.mux

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(countRequests)
	r.Use(securityHeaders)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.listCustomers)
			r.Get("/export", s.exportCustomers)
			r.With(s.validateCustomer).Post("/", s.createCustomer)
			r.Get("/{id}", s.getCustomer)
			r.With(s.validateCustomer).Put("/{id}", s.updateCustomer)
			r.Delete("/{id}", s.deleteCustomer)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "resource not found")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Response bodies. The plain shape has no cars key at all; the expanded one
// always carries a cars array, empty included.
type customerBody struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

type customerWithCarsBody struct {
	customerBody
	Cars []domain.Car `json:"cars"`
}

func toBody(c domain.Customer) customerBody {
	return customerBody{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		CreatedAt:   c.CreatedAt,
	}
}

func toBodyWithCars(c domain.Customer) customerWithCarsBody {
	cars := c.Cars
	if cars == nil {
		cars = []domain.Car{}
	}
	return customerWithCarsBody{customerBody: toBody(c), Cars: cars}
}

func includeCars(r *http.Request) bool {
	return r.URL.Query().Get("includeCars") == "true"
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	if includeCars(r) {
		list, err := s.customers.ListWithCars(r.Context())
		if err != nil {
			s.fail(w, err, http.StatusInternalServerError)
			return
		}
		out := make([]customerWithCarsBody, 0, len(list))
		for _, c := range list {
			out = append(out, toBodyWithCars(c))
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	list, err := s.customers.List(r.Context())
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	out := make([]customerBody, 0, len(list))
	for _, c := range list {
		out = append(out, toBody(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	if includeCars(r) {
		c, err := s.customers.GetWithCarsByID(r.Context(), id)
		if err != nil {
			s.fail(w, err, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toBodyWithCars(*c))
		return
	}

	c, err := s.customers.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toBody(*c))
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := s.customers.Create(r.Context(), usecase.CustomerInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		s.fail(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, toBody(*c))
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Email       *string `json:"email"`
		PhoneNumber *string `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := s.customers.Update(r.Context(), id, usecase.CustomerPatch{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		s.fail(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, toBody(*c))
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	if _, err := s.customers.Delete(r.Context(), id); err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps domain error kinds to statuses; anything unrecognized gets the
// route's fallback status.
func (s *Server) fail(w http.ResponseWriter, err error, fallback int) {
	status := fallback
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

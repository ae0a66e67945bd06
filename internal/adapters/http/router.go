package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carewell/provider-portal/internal/application"
)

// CookieSettings controls how the session cookie is issued.
type CookieSettings struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Handler is the HTTP adapter entrypoint for portal use-cases.
// Keeping only application dependency here preserves clean adapter boundaries.
type Handler struct {
	service *application.Service
	cookies CookieSettings
}

// NewHandler constructs an HTTP handler bound to the application service.
func NewHandler(service *application.Service, cookies CookieSettings) *Handler {
	if cookies.Name == "" {
		cookies.Name = "portal_session"
	}
	return &Handler{service: service, cookies: cookies}
}

// NewRouter registers portal HTTP routes and the middleware stack.
// Centralizing routes here ensures consistent auth and error behavior across endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/providers", func(r chi.Router) {
		r.Post("/signup", handler.signup)
		r.Post("/login", handler.login)
		r.Post("/logout", handler.logout)

		r.Group(func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Get("/profile", handler.getProfile)
			r.Put("/profile", handler.updateProfile)

			r.Route("/patients", func(r chi.Router) {
				r.Get("/all", handler.listAllPatients)
				r.Get("/my-patients", handler.listMyPatients)
				r.Post("/add", handler.addPatient)
				r.Delete("/remove/{patientId}", handler.removePatient)
			})
		})
	})

	return r
}

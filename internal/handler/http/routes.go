package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
	}))
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/signup", h.signup)
		r.Post("/api/auth/signin", h.signin)
		r.Post("/api/auth/2fa/send-code", h.sendLoginCode)
		r.Post("/api/auth/forgot-password", h.forgotPassword)
		r.Post("/api/auth/reset-password", h.resetPassword)
	})

	// routes behind the session cookie
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/signout", h.signout)
		r.Get("/api/auth/me", h.me)

		r.Post("/api/auth/2fa/enable", h.enableTwoFactor)
		r.Post("/api/auth/2fa/verify", h.verifyTwoFactor)
		r.Post("/api/auth/2fa/disable", h.disableTwoFactor)

		r.Post("/api/auth/change-email", h.requestEmailChange)
		r.Put("/api/auth/change-email", h.confirmEmailChange)
		r.Post("/api/auth/change-password", h.changePassword)

		r.Get("/api/categories", h.listCategories)
		r.Post("/api/categories", h.createCategory)
		r.Get("/api/categories/export", h.exportCategories)
		r.Get("/api/categories/{slug}", h.getCategory)
		r.Put("/api/categories/{slug}", h.updateCategory)
		r.Delete("/api/categories/{slug}", h.deleteCategory)

		r.Post("/api/categories/{slug}/entries", h.addEntry)
		r.Put("/api/categories/{slug}/entries", h.updateEntry)
		r.Delete("/api/categories/{slug}/entries", h.deleteEntry)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

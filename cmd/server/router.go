package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/micropay/micropay-api/internal/api"
	apimiddleware "github.com/micropay/micropay-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.accountService)
	transactionHandler := api.NewTransactionHandler(app.transferService)
	notificationHandler := api.NewNotificationHandler(app.notificationService)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.tokenVerifier)

	// Authentication endpoints (public)
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/logout", authHandler.Logout)

	// Protected routes: transfers and notification dispatch require a
	// valid access token.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/transactions", transactionHandler.Create)
		r.Get("/transactions", transactionHandler.List)

		r.Post("/notifications", notificationHandler.Dispatch)
		r.Post("/notifications/registration", notificationHandler.DispatchRegistration)
		r.Post("/notifications/payment", notificationHandler.DispatchPayment)
		r.Post("/notifications/transaction", notificationHandler.DispatchTransaction)
		r.Get("/notifications", notificationHandler.List)
		r.Get("/notifications/user/{email}", notificationHandler.ListForRecipient)
	})

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
